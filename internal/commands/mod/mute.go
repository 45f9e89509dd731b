// Package mod - /mod mute and /mod unmute commands
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// Discord caps timeouts at 28 days
const maxMuteMinutes = 40320

// createMuteCommand creates the /mod mute subcommand
func createMuteCommand() *discord.Command {
	return discord.NewCommand(
		"mute",
		"Silencia a un usuario temporalmente",
		"mod",
		muteHandler,
	).WithOptions(
		userOption("usuario", "Usuario a silenciar", true),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "duracion",
			Description: "Duración en minutos",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    maxMuteMinutes,
		},
		reasonOption("Razón del silencio", false),
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

// muteHandler handles the /mod mute command
func muteHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	duration := ctx.GetIntOption("duracion")
	if duration < 1 || duration > maxMuteMinutes {
		return ctx.ReplyEphemeral("❌ La duración debe estar entre 1 minuto y 28 días.")
	}

	reason := reasonOrDefault(ctx)
	until := time.Now().Add(time.Duration(duration) * time.Minute)
	if err := ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, member.ID, &until); err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al silenciar: %v", err))
	}

	ctx.Client.Engine.ModLog.Emit(modlog.Entry{
		Action:    modlog.ActionMute,
		Community: ctx.Interaction.GuildID,
		Target:    member.Mention(),
		Moderator: ctx.Moderator(),
		Reason:    fmt.Sprintf("%s (%d min)", reason, duration),
		Origin:    ctx.Origin(),
	})

	return ctx.Reply(fmt.Sprintf("🔇 **%s** ha sido silenciado por %d minutos.\n**Razón:** %s", member, duration, reason))
}

// createUnmuteCommand creates the /mod unmute subcommand
func createUnmuteCommand() *discord.Command {
	return discord.NewCommand(
		"unmute",
		"Retira el silencio de un usuario",
		"mod",
		unmuteHandler,
	).WithOptions(
		userOption("usuario", "Usuario a desilenciar", true),
		reasonOption("Razón", false),
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

func unmuteHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	gm, err := ctx.Session.GuildMember(ctx.Interaction.GuildID, member.ID)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ No se pudo obtener al miembro: %v", err))
	}
	if !timedOut(gm, time.Now()) {
		return ctx.Reply(fmt.Sprintf("ℹ️ **%s** no está silenciado.", member))
	}

	if err := ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, member.ID, nil); err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al retirar el silencio: %v", err))
	}

	ctx.Client.Engine.ModLog.Emit(modlog.Entry{
		Action:    modlog.ActionUnmute,
		Community: ctx.Interaction.GuildID,
		Target:    member.Mention(),
		Moderator: ctx.Moderator(),
		Reason:    reasonOrDefault(ctx),
		Origin:    ctx.Origin(),
	})

	return ctx.Reply(fmt.Sprintf("🔊 **%s** ya puede hablar de nuevo.", member))
}

func timedOut(m *discordgo.Member, now time.Time) bool {
	return m != nil && m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now)
}
