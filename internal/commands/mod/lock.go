// Package mod - /mod lock and /mod unlock commands
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// createLockCommand creates the /mod lock subcommand
func createLockCommand() *discord.Command {
	return discord.NewCommand(
		"lock",
		"Bloquea el canal para @everyone",
		"mod",
		lockHandler(true),
	).WithOptions(reasonOption("Razón del bloqueo", false)).
		WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

// createUnlockCommand creates the /mod unlock subcommand
func createUnlockCommand() *discord.Command {
	return discord.NewCommand(
		"unlock",
		"Desbloquea el canal para @everyone",
		"mod",
		lockHandler(false),
	).WithOptions(reasonOption("Razón del desbloqueo", false)).
		WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

func lockHandler(locked bool) discord.CommandRunFunc {
	action, done := modlog.ActionUnlock, "🔓 Canal desbloqueado."
	if locked {
		action, done = modlog.ActionLock, "🔒 Canal bloqueado."
	}

	return func(ctx *discord.CommandContext) error {
		guildID, channelID := ctx.Interaction.GuildID, ctx.Interaction.ChannelID
		ch, err := ctx.Session.Channel(channelID)
		if err != nil {
			return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al obtener el canal: %v", err))
		}

		// The @everyone role shares the guild ID
		allow, deny := everyoneOverwrite(ch.PermissionOverwrites, guildID, locked)
		if err := ctx.Session.ChannelPermissionSet(channelID, guildID, discordgo.PermissionOverwriteTypeRole, allow, deny); err != nil {
			return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al cambiar los permisos: %v", err))
		}

		ctx.Client.Engine.ModLog.Emit(modlog.Entry{
			Action:    action,
			Community: guildID,
			Target:    fmt.Sprintf("<#%s>", channelID),
			Moderator: ctx.Moderator(),
			Reason:    reasonOrDefault(ctx),
			Origin:    ctx.Origin(),
		})

		return ctx.Reply(done)
	}
}

// everyoneOverwrite returns the role overwrite with SendMessages denied or
// released, keeping every other bit already set on the channel
func everyoneOverwrite(overwrites []*discordgo.PermissionOverwrite, roleID string, locked bool) (allow, deny int64) {
	for _, o := range overwrites {
		if o != nil && o.ID == roleID && o.Type == discordgo.PermissionOverwriteTypeRole {
			allow, deny = o.Allow, o.Deny
			break
		}
	}
	if locked {
		return allow &^ discordgo.PermissionSendMessages, deny | discordgo.PermissionSendMessages
	}
	return allow, deny &^ discordgo.PermissionSendMessages
}
