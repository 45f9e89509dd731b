// Package mod - /mod ban and /mod unban commands
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the /mod ban subcommand
func createBanCommand() *discord.Command {
	return discord.NewCommand(
		"ban",
		"Banea a un usuario del servidor",
		"mod",
		banHandler,
	).WithOptions(
		userOption("usuario", "Usuario a banear", true),
		reasonOption("Razón del ban", false),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Días de mensajes a eliminar (0-7)",
			Required:    false,
			MinValue:    func() *float64 { v := 0.0; return &v }(),
			MaxValue:    7,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers)
}

// banHandler handles the /mod ban command
func banHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := reasonOrDefault(ctx)
	days := int(ctx.GetIntOption("dias"))

	if err := ctx.Session.GuildBanCreateWithReason(ctx.Interaction.GuildID, member.ID, reason, days); err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al banear: %v", err))
	}

	ctx.Client.Engine.ModLog.Emit(modlog.Entry{
		Action:    modlog.ActionBan,
		Community: ctx.Interaction.GuildID,
		Target:    member.Mention(),
		Moderator: ctx.Moderator(),
		Reason:    reason,
		Origin:    ctx.Origin(),
	})

	return ctx.Reply(fmt.Sprintf("🔨 **%s** ha sido baneado.\n**Razón:** %s", member, reason))
}

// createUnbanCommand creates the /mod unban subcommand
func createUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"unban",
		"Retira el ban de un usuario",
		"mod",
		unbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del usuario baneado",
			Required:    true,
		},
		reasonOption("Razón", false),
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers)
}

func unbanHandler(ctx *discord.CommandContext) error {
	userID := ctx.GetStringOption("id")
	if userID == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar el ID del usuario.")
	}

	if err := ctx.Session.GuildBanDelete(ctx.Interaction.GuildID, userID); err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al retirar el ban: %v", err))
	}

	reason := reasonOrDefault(ctx)
	ctx.Client.Engine.ModLog.Emit(modlog.Entry{
		Action:    modlog.ActionUnban,
		Community: ctx.Interaction.GuildID,
		Target:    "<@" + userID + ">",
		Moderator: ctx.Moderator(),
		Reason:    reason,
		Origin:    ctx.Origin(),
	})

	return ctx.Reply(fmt.Sprintf("✅ Se retiró el ban de <@%s>.", userID))
}
