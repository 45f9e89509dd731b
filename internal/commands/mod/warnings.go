package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warnings subcommand
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"Lista de advertencias de un usuario",
		"mod",
		warningsHandler,
	).WithOptions(
		userOption("usuario", "Usuario a consultar", true),
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

func warningsHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	entries := ctx.Client.Engine.Warnings.List(ctx.Interaction.GuildID, member.ID)
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🔖 - Lista de advertencias de %s (%s)", member, member.ID),
		Description: formatWarnings(entries, time.Now()),
		Color:       colorWarn,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
	if len(entries) == 0 {
		embed.Color = colorOK
	}
	return ctx.ReplyEphemeralEmbed(embed)
}

// formatWarnings renders the 1-based list used by /mod warnings
func formatWarnings(entries []models.WarningEntry, now time.Time) string {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString("No se han encontrado advertencias del usuario en este servidor\n\n")
	}
	for i, w := range entries {
		fmt.Fprintf(&b, "> **%d.** %s\n", i+1, w.Reason)
		if w.IssuedBy != "" {
			fmt.Fprintf(&b, "> **Moderador:** <@%s>\n", w.IssuedBy)
		}
		if !w.IssuedAt.IsZero() {
			fmt.Fprintf(&b, "> **Fecha:** <t:%d:f>\n", w.IssuedAt.Unix())
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "> 💫 - **Cantidad de advertencias:** %d\n> 🕒 - **Fecha de consulta:** <t:%d>", len(entries), now.Unix())
	return b.String()
}
