// Package mod - /mod warn command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		userOption("usuario", "Usuario a advertir", true),
		reasonOption("Razón de la advertencia", false),
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

// warnHandler handles the /mod warn command
func warnHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	if member.ID == ctx.Moderator().ID {
		return ctx.ReplyEphemeral("❌ No puedes advertirte a ti mismo.")
	}

	reason := reasonOrDefault(ctx)
	res, err := ctx.Client.Engine.Warnings.Add(ctx.Interaction.GuildID, member, reason, ctx.Moderator(), ctx.Origin())
	if err != nil {
		return fail(ctx, "CMD-Warn", err)
	}

	description := fmt.Sprintf("⚠️ %s ha sido advertido.\n\n> **Razón:** %s\n> **Advertencias totales:** %d",
		member.Mention(), reason, res.Count)
	if res.Delivery != nil {
		description += "\n\nℹ️ No se pudo enviar un mensaje directo al usuario."
	}
	return ctx.ReplyEmbed(resultEmbed("⚠️ Advertencia registrada", description, colorWarn, ctx))
}
