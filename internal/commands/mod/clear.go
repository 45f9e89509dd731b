// Package mod - /mod clear command
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

const (
	maxClearMessages = 100
	// Discord refuses to bulk delete messages older than two weeks
	bulkDeleteMaxAge = 14 * 24 * time.Hour
)

// createClearCommand creates the /mod clear subcommand
func createClearCommand() *discord.Command {
	return discord.NewCommand(
		"clear",
		"Elimina los mensajes más recientes del canal",
		"mod",
		clearHandler,
	).WithOptions(&discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "cantidad",
		Description: "Mensajes a eliminar (por defecto 5)",
		Required:    false,
		MinValue:    func() *float64 { v := 1.0; return &v }(),
		MaxValue:    maxClearMessages,
	}).WithUserPermissions(discordgo.PermissionManageMessages).
		WithBotPermissions(discordgo.PermissionManageMessages)
}

// clearHandler handles the /mod clear command
func clearHandler(ctx *discord.CommandContext) error {
	amount := 5
	if opt := ctx.GetOption("cantidad"); opt != nil {
		amount = int(opt.IntValue())
	}
	if amount < 1 || amount > maxClearMessages {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ La cantidad debe estar entre 1 y %d.", maxClearMessages))
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	channelID := ctx.Interaction.ChannelID
	msgs, err := ctx.Session.ChannelMessages(channelID, amount, "", "", "")
	if err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Error al obtener los mensajes: %v", err))
	}

	ids := bulkDeletable(msgs, time.Now())
	switch len(ids) {
	case 0:
		return ctx.EditReply("❌ No hay mensajes recientes que se puedan eliminar.")
	case 1:
		err = ctx.Session.ChannelMessageDelete(channelID, ids[0])
	default:
		err = ctx.Session.ChannelMessagesBulkDelete(channelID, ids)
	}
	if err != nil {
		return ctx.EditReply(fmt.Sprintf("❌ Error al eliminar los mensajes: %v", err))
	}

	ctx.Client.Engine.ModLog.Emit(modlog.Entry{
		Action:    modlog.ActionClear,
		Community: ctx.Interaction.GuildID,
		Target:    fmt.Sprintf("%d mensajes en <#%s>", len(ids), channelID),
		Moderator: ctx.Moderator(),
		Reason:    fmt.Sprintf("Solicitados: %d", amount),
		Origin:    ctx.Origin(),
	})

	return ctx.EditReply(fmt.Sprintf("🧹 Se eliminaron **%d** mensajes.", len(ids)))
}

// bulkDeletable returns the IDs of messages young enough to bulk delete
func bulkDeletable(msgs []*discordgo.Message, now time.Time) []string {
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m == nil || now.Sub(m.Timestamp) >= bulkDeleteMaxAge {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids
}
