package mqtt

import (
	"errors"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/engine"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe(t *testing.T) {
	echo := func(p map[string]interface{}) (interface{}, error) {
		return p["_topic"], nil
	}

	topic, resp, err := serve("pancy/request/guard/level", []byte(`{"correlationId":"c1","payload":{"guild":"g"}}`), echo)
	require.NoError(t, err)
	assert.Equal(t, "pancy/response/guard/level/c1", topic)
	assert.Equal(t, "c1", resp.CorrelationID)
	assert.Equal(t, "guard/level", resp.Data)
	assert.Empty(t, resp.Error)
}

func TestServeWithoutPayload(t *testing.T) {
	_, resp, err := serve("pancy/request/x", []byte(`{"correlationId":"c2"}`), func(p map[string]interface{}) (interface{}, error) {
		return len(p), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Data)
}

func TestServeCallbackError(t *testing.T) {
	_, resp, err := serve("pancy/request/x", []byte(`{"correlationId":"c3"}`), func(map[string]interface{}) (interface{}, error) {
		return nil, errors.New("boom")
	})
	require.NoError(t, err)
	assert.Equal(t, "boom", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestServeMalformed(t *testing.T) {
	_, _, err := serve("pancy/request/x", []byte(`{nope`), nil)
	assert.Error(t, err)
}

func TestQueries(t *testing.T) {
	eng, err := engine.New(&config.Config{}, engine.Deps{Backend: store.NewMemoryBackend()})
	require.NoError(t, err)

	member := models.MemberRef{ID: "u1"}
	_, err = eng.Warnings.Add("g1", member, "flood", models.MemberRef{ID: "m"}, models.Origin{})
	require.NoError(t, err)
	_, err = eng.Bans.Ban("10.0.0.1", member, "raid", models.MemberRef{ID: "m"}, models.Origin{})
	require.NoError(t, err)

	q := Queries(eng)

	got, err := q[QueryWarnings](map[string]interface{}{"guild": "g1", "member": "u1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "flood", got.([]models.WarningEntry)[0].Reason)

	_, err = q[QueryWarnings](map[string]interface{}{"guild": "g1"})
	assert.Error(t, err)

	rec, err := q[QueryBan](map[string]interface{}{"identifier": "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "raid", rec.(models.BanRecord).Reason)

	_, err = q[QueryBan](map[string]interface{}{"identifier": "10.0.0.2"})
	assert.Error(t, err)

	board, err := q[QueryLeaderboard](map[string]interface{}{"guild": "g1", "top": float64(5)})
	require.NoError(t, err)
	assert.NotNil(t, board)
}
