package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	dbStatus, _ := database.Get().GetStatus()
	cfg := ctx.Client.GetConfig()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "📊 Estado del Bot",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🤖 Versión", Value: config.Version, Inline: true},
			{Name: "🗄️ Almacenamiento", Value: cfg.StorageBackend, Inline: true},
			{Name: "🍃 Base de datos", Value: dbStatus, Inline: true},
			{Name: "👀 Modo de vigilancia", Value: ctx.Client.Engine.WatchMode(), Inline: true},
			{Name: "🏠 Servidores", Value: fmt.Sprintf("%d", ctx.Client.GuildCount()), Inline: true},
			{Name: "🖥 Uso de RAM", Value: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024), Inline: true},
			{Name: "⏱ Uptime", Value: formatDuration(time.Since(ctx.Client.StartTime))},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "💫 - Developed by PancyStudios"},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// formatDuration formats a time.Duration into a human-readable string
func formatDuration(dur time.Duration) string {
	days := int(dur.Hours() / 24)
	hours := int(dur.Hours()) % 24
	minutes := int(dur.Minutes()) % 60
	seconds := int(dur.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d días", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d horas", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutos", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d segundos", seconds))
	}

	return strings.Join(parts, ", ")
}
