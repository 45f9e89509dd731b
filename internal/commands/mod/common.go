package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/warnings"
	"github.com/bwmarrin/discordgo"
)

const (
	colorOK      = 0x00FF00
	colorWarn    = 0xFFA500
	colorError   = 0xFF0000
	footerText   = "💫 - Developed by PancyStudios"
	maxChoiceLen = 100
	maxChoices   = 25
)

func userOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func reasonOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "razon",
		Description: description,
		Required:    required,
	}
}

// reasonOrDefault returns the "razon" option or the default reason
func reasonOrDefault(ctx *discord.CommandContext) string {
	if reason := ctx.GetStringOption("razon"); reason != "" {
		return reason
	}
	return warnings.DefaultReason
}

// errorMessage turns a core error into the reply shown to the moderator
func errorMessage(err error) string {
	switch {
	case pgerrors.Is(err, pgerrors.ErrNoWarnings):
		return "❌ El usuario no tiene advertencias."
	case pgerrors.Is(err, pgerrors.ErrOutOfRange):
		return "❌ Ese número de advertencia no existe."
	case pgerrors.Is(err, pgerrors.ErrNotFound):
		return "❌ No se encontró el registro solicitado."
	case pgerrors.Is(err, pgerrors.ErrStorageUnavailable):
		return "❌ No se pudo guardar el cambio. Inténtalo de nuevo más tarde."
	default:
		return fmt.Sprintf("❌ Error inesperado: %v", err)
	}
}

// fail logs unexpected errors and replies with the mapped message
func fail(ctx *discord.CommandContext, tag string, err error) error {
	if pgerrors.Is(err, pgerrors.ErrStorageUnavailable) {
		logger.Error(fmt.Sprintf("Error de almacenamiento: %v", err), tag)
	}
	return ctx.ReplyEphemeral(errorMessage(err))
}

func resultEmbed(title, description string, color int, ctx *discord.CommandContext) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if u := ctx.User(); u != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("Solicitado por %s", u.Username),
			IconURL: u.AvatarURL(""),
		}
	}
	return embed
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
