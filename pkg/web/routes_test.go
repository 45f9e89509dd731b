package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/engine"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeBot struct{}

func (fakeBot) IsReady() bool   { return true }
func (fakeBot) GuildCount() int { return 3 }

func newTestServer(t *testing.T, allowedHosts string) (*Server, *engine.Engine) {
	t.Helper()
	eng, err := engine.New(&config.Config{SpamThreshold: 5, SpamWindow: 5 * time.Second}, engine.Deps{Backend: store.NewMemoryBackend()})
	require.NoError(t, err)

	s, err := NewServer("", allowedHosts)
	require.NoError(t, err)
	SetupAPIRoutes(s, eng, fakeBot{}, nil)
	return s, eng
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "")
	w := get(s, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", gjson.Get(w.Body.String(), "status").String())
}

func TestStatusReportsBot(t *testing.T) {
	s, _ := newTestServer(t, "")
	w := get(s, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), gjson.Get(w.Body.String(), "bot.guilds").Int())
	assert.False(t, gjson.Get(w.Body.String(), "database").Exists())
}

func TestWarningsAndLevelRoutes(t *testing.T) {
	s, eng := newTestServer(t, "")
	member := models.MemberRef{ID: "u1"}
	_, err := eng.Warnings.Add("g1", member, "spam", models.MemberRef{ID: "m1"}, models.Origin{Community: "g1"})
	require.NoError(t, err)
	_, err = eng.Levels.AddLevels("g1", member, 2, models.MemberRef{ID: "m1"}, models.Origin{Community: "g1"})
	require.NoError(t, err)

	w := get(s, "/api/guilds/g1/members/u1/warnings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "count").Int())
	assert.Equal(t, "spam", gjson.Get(w.Body.String(), "warnings.0.reason").String())

	w = get(s, "/api/guilds/g1/members/u1/level")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), gjson.Get(w.Body.String(), "level").Int())
	assert.Equal(t, int64(400), gjson.Get(w.Body.String(), "xp").Int())

	w = get(s, "/api/guilds/g2/members/u1/warnings")
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "count").Int())
	assert.True(t, gjson.Get(w.Body.String(), "warnings").IsArray())
}

func TestLeaderboardRoute(t *testing.T) {
	s, eng := newTestServer(t, "")
	for i, id := range []string{"a", "b", "c"} {
		_, err := eng.Levels.AddLevels("g1", models.MemberRef{ID: id}, i+1, models.MemberRef{}, models.Origin{})
		require.NoError(t, err)
	}

	w := get(s, "/api/guilds/g1/leaderboard?top=2")
	require.Equal(t, http.StatusOK, w.Code)
	board := gjson.Get(w.Body.String(), "leaderboard").Array()
	require.Len(t, board, 2)
	assert.Equal(t, "c", board[0].Get("member_id").String())

	assert.Equal(t, http.StatusBadRequest, get(s, "/api/guilds/g1/leaderboard?top=cero").Code)
}

func TestBansRoute(t *testing.T) {
	s, eng := newTestServer(t, "")
	_, err := eng.Bans.Ban("1.2.3.4", models.MemberRef{ID: "u1"}, "raid", models.MemberRef{ID: "m1"}, models.Origin{})
	require.NoError(t, err)

	w := get(s, "/api/bans")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.2.3.4", gjson.Get(w.Body.String(), "bans.0.identifier").String())
	assert.Equal(t, "raid", gjson.Get(w.Body.String(), "bans.0.reason").String())
}

func TestUnknownHostIsRejected(t *testing.T) {
	s, _ := newTestServer(t, `^(.+\.)?miau\.media$`)
	assert.Equal(t, http.StatusForbidden, get(s, "/api/health").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Host = "api.miau.media"
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, "")
	for i := 0; i < rateMaxRequests; i++ {
		require.Equal(t, http.StatusOK, get(s, "/api/health").Code, "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, get(s, "/api/health").Code)
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t, "")
	assert.Equal(t, http.StatusNotFound, get(s, "/api/nope").Code)
}

func TestInvalidHostPattern(t *testing.T) {
	_, err := NewServer("", "([")
	assert.Error(t, err)
}
