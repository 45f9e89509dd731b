package mqtt

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/engine"
	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// Query topics, relative to RequestPrefix
const (
	QueryWarnings    = "guard/warnings"
	QueryLevel       = "guard/level"
	QueryLeaderboard = "guard/leaderboard"
	QueryBan         = "guard/ban"
)

// Queries builds the read-only handlers served over MQTT
func Queries(eng *engine.Engine) map[string]RequestHandler {
	return map[string]RequestHandler{
		QueryWarnings: func(p map[string]interface{}) (interface{}, error) {
			guild, member, err := guildMember(p)
			if err != nil {
				return nil, err
			}
			return eng.Warnings.List(guild, member), nil
		},
		QueryLevel: func(p map[string]interface{}) (interface{}, error) {
			guild, member, err := guildMember(p)
			if err != nil {
				return nil, err
			}
			return eng.Levels.Progress(guild, member), nil
		},
		QueryLeaderboard: func(p map[string]interface{}) (interface{}, error) {
			guild, ok := p["guild"].(string)
			if !ok || guild == "" {
				return nil, fmt.Errorf("falta el campo 'guild'")
			}
			top := 10
			if n, ok := p["top"].(float64); ok && n >= 1 {
				top = int(n)
			}
			return eng.Levels.Leaderboard(guild, top), nil
		},
		QueryBan: func(p map[string]interface{}) (interface{}, error) {
			id, ok := p["identifier"].(string)
			if !ok || id == "" {
				return nil, fmt.Errorf("falta el campo 'identifier'")
			}
			record, found := eng.Bans.Lookup(id)
			if !found {
				return nil, fmt.Errorf("%s: %w", id, pgerrors.ErrNotFound)
			}
			return record, nil
		},
	}
}

// RegisterQueries subscribes every query handler
func (mc *MqttCommunicator) RegisterQueries(eng *engine.Engine) {
	handlers := Queries(eng)
	for topic, h := range handlers {
		mc.On(topic, h)
	}
	logger.Info(fmt.Sprintf("%d consultas MQTT registradas", len(handlers)), "MQTT")
}

func guildMember(p map[string]interface{}) (string, string, error) {
	guild, _ := p["guild"].(string)
	member, _ := p["member"].(string)
	if guild == "" || member == "" {
		return "", "", fmt.Errorf("se requieren los campos 'guild' y 'member'")
	}
	return guild, member, nil
}
