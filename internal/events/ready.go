package events

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterReadyEvent registers the ready and connection lifecycle handlers
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.EventHandler.OnReady(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Success(fmt.Sprintf("✅ Bot conectado: %s", r.User.Username), "Ready")
		logger.Info(fmt.Sprintf("📊 Conectado a %d servidores (watch: %s)", len(r.Guilds), client.Engine.WatchMode()), "Ready")

		if err := s.UpdateWatchStatus(0, "🛡️ /utils help"); err != nil {
			logger.Error(fmt.Sprintf("Error estableciendo estado: %v", err), "Ready")
			return
		}
		logger.Debug("Estado del bot establecido correctamente", "Ready")
	})

	client.EventHandler.RegisterEvent("Disconnect", func(s *discordgo.Session, _ *discordgo.Disconnect) {
		logger.Warn(fmt.Sprintf("🔌 Shard %d desconectado.", s.ShardID), "Shard")
	})
	client.EventHandler.RegisterEvent("Resumed", func(s *discordgo.Session, _ *discordgo.Resumed) {
		logger.Success(fmt.Sprintf("✅ Shard %d reanudado.", s.ShardID), "Shard")
	})
}
