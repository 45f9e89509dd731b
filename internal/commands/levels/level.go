// Package levels provides the /levels command group
package levels

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/leveling"
	"github.com/bwmarrin/discordgo"
)

const (
	colorLevel      = 0x5865F2
	defaultTop      = 10
	maxTop          = 25
	progressBarSize = 10
)

// createLevelCommand creates the /levels level subcommand
func createLevelCommand() *discord.Command {
	return discord.NewCommand(
		"level",
		"Muestra el nivel de un usuario",
		"levels",
		levelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar (por defecto tú)",
			Required:    false,
		},
	).InGuildOnly()
}

func levelHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		member = ctx.Moderator()
	}

	eng := ctx.Client.Engine.Levels
	p := eng.Progress(ctx.Interaction.GuildID, member.ID)
	floor := eng.Curve().XPForLevel(p.Level)

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("📈 Nivel de %s", member),
		Color: colorLevel,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Nivel", Value: fmt.Sprintf("%d", p.Level), Inline: true},
			{Name: "Experiencia", Value: fmt.Sprintf("%d XP", p.XP), Inline: true},
			{Name: "Siguiente nivel", Value: fmt.Sprintf("%d XP", p.NextLevelXP), Inline: true},
			{Name: "Progreso", Value: progressBar(p.XP-floor, p.NextLevelXP-floor)},
		},
	})
}

// progressBar renders done/total as a fixed width bar
func progressBar(done, total int64) string {
	filled := 0
	if total > 0 {
		filled = int(done * progressBarSize / total)
	}
	filled = max(0, min(filled, progressBarSize))
	return strings.Repeat("🟩", filled) + strings.Repeat("⬛", progressBarSize-filled) +
		fmt.Sprintf(" %d/%d", done, total)
}

// createLeaderboardCommand creates the /levels leaderboard subcommand
func createLeaderboardCommand() *discord.Command {
	return discord.NewCommand(
		"leaderboard",
		"Muestra la tabla de clasificación del servidor",
		"levels",
		leaderboardHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "top",
			Description: "Cantidad de puestos (1-25)",
			Required:    false,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    maxTop,
		},
	).InGuildOnly()
}

func leaderboardHandler(ctx *discord.CommandContext) error {
	top := int(ctx.GetIntOption("top"))
	if top < 1 || top > maxTop {
		top = defaultTop
	}

	title := "🏆 Tabla de clasificación"
	if g := ctx.Guild(); g != nil {
		title += " de " + g.Name
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       title,
		Description: formatLeaderboard(ctx.Client.Engine.Levels.Leaderboard(ctx.Interaction.GuildID, top)),
		Color:       colorLevel,
	})
}

func formatLeaderboard(standings []leveling.Standing) string {
	if len(standings) == 0 {
		return "Todavía nadie ha ganado experiencia en este servidor."
	}
	var b strings.Builder
	for _, s := range standings {
		medal := fmt.Sprintf("**#%d**", s.Rank)
		switch s.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		fmt.Fprintf(&b, "%s <@%s> · Nivel %d (%d XP)\n", medal, s.MemberID, s.Level, s.XP)
	}
	return b.String()
}
