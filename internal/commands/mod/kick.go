// Package mod - /mod kick command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the /mod kick subcommand
func createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler,
	).WithOptions(
		userOption("usuario", "Usuario a expulsar", true),
		reasonOption("Razón de la expulsión", false),
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers)
}

// kickHandler handles the /mod kick command
func kickHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := reasonOrDefault(ctx)
	if err := ctx.Session.GuildMemberDeleteWithReason(ctx.Interaction.GuildID, member.ID, reason); err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al expulsar: %v", err))
	}

	ctx.Client.Engine.ModLog.Emit(modlog.Entry{
		Action:    modlog.ActionKick,
		Community: ctx.Interaction.GuildID,
		Target:    member.Mention(),
		Moderator: ctx.Moderator(),
		Reason:    reason,
		Origin:    ctx.Origin(),
	})

	return ctx.Reply(fmt.Sprintf("👢 **%s** ha sido expulsado.\n**Razón:** %s", member, reason))
}
