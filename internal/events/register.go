package events

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	RegisterReadyEvent(client)
	RegisterGuildEvents(client)
	RegisterMemberEvents(client)
	RegisterMessageEvents(client)
	RegisterPresenceEvents(client)

	logger.Success(fmt.Sprintf("✅ %d eventos registrados correctamente", client.EventHandler.Count()), "Events")
}
