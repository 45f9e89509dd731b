package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers the guild join/leave handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	auditChannel := client.GetConfig().AuditChannel

	client.EventHandler.OnGuildCreate(func(s *discordgo.Session, g *discordgo.GuildCreate) {
		// GuildCreate also fires for every guild on startup
		if g.JoinedAt.Before(time.Now().Add(-10 * time.Second)) {
			return
		}

		logger.Info(fmt.Sprintf("➕ Bot agregado a servidor: %s (ID: %s)", g.Name, g.ID), "Guild")
		if g.SystemChannelID == "" {
			return
		}

		if _, err := s.ChannelMessageSendEmbed(g.SystemChannelID, welcomeEmbed(auditChannel)); err != nil {
			logger.Error(fmt.Sprintf("Error enviando mensaje de bienvenida: %v", err), "Guild")
		}
	})

	client.EventHandler.RegisterEvent("GuildDelete", func(s *discordgo.Session, g *discordgo.GuildDelete) {
		logger.Info(fmt.Sprintf("➖ Bot removido del servidor ID: %s", g.ID), "Guild")
	})
}

func welcomeEmbed(auditChannel string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "¡Gracias por agregarme! 🛡️",
		Description: "Hola, soy **PancyGuard**. Usa `/utils help` para ver todos mis comandos.",
		Color:       0x00ff00,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔧 Moderación", Value: "Usa `/mod` para moderar", Inline: true},
			{Name: "📈 Niveles", Value: "Consulta `/levels level`", Inline: true},
			{Name: "📋 Registro", Value: fmt.Sprintf("Crea un canal `#%s` para recibir el registro de moderación", auditChannel)},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "💫 - Developed by PancyStudios"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
