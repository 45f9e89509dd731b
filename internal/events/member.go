package events

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents drops in-memory state of members who leave
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildMemberRemove(func(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
		if m.User == nil {
			return
		}
		client.Engine.Spam.Forget(m.GuildID, m.User.ID)
		logger.Debug(fmt.Sprintf("👋 %s salió del servidor %s", m.User.Username, m.GuildID), "Member")
	})
}
