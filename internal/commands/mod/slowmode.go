// Package mod - /mod slowmode command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// Discord caps the per-user rate limit at six hours
const maxSlowmodeSeconds = 21600

// createSlowmodeCommand creates the /mod slowmode subcommand
func createSlowmodeCommand() *discord.Command {
	return discord.NewCommand(
		"slowmode",
		"Cambia el modo lento del canal",
		"mod",
		slowmodeHandler,
	).WithOptions(&discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "segundos",
		Description: "Segundos entre mensajes (0 lo desactiva)",
		Required:    true,
		MinValue:    func() *float64 { v := 0.0; return &v }(),
		MaxValue:    maxSlowmodeSeconds,
	}).WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageChannels)
}

// slowmodeHandler handles the /mod slowmode command
func slowmodeHandler(ctx *discord.CommandContext) error {
	seconds := int(ctx.GetIntOption("segundos"))
	if seconds < 0 || seconds > maxSlowmodeSeconds {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Los segundos deben estar entre 0 y %d.", maxSlowmodeSeconds))
	}

	channelID := ctx.Interaction.ChannelID
	if _, err := ctx.Session.ChannelEdit(channelID, &discordgo.ChannelEdit{RateLimitPerUser: &seconds}); err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al cambiar el modo lento: %v", err))
	}

	ctx.Client.Engine.ModLog.Emit(modlog.Entry{
		Action:    modlog.ActionSlowmode,
		Community: ctx.Interaction.GuildID,
		Target:    fmt.Sprintf("<#%s>", channelID),
		Moderator: ctx.Moderator(),
		Reason:    fmt.Sprintf("%d segundos", seconds),
		Origin:    ctx.Origin(),
	})

	return ctx.Reply(slowmodeReply(seconds))
}

func slowmodeReply(seconds int) string {
	if seconds == 0 {
		return "⏱️ Modo lento desactivado."
	}
	return fmt.Sprintf("⏱️ Modo lento establecido en **%d** segundos.", seconds)
}
