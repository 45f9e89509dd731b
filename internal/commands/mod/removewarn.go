package mod

import (
	"fmt"
	"strconv"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createRemoveWarnCommand creates the /mod removewarn subcommand
func createRemoveWarnCommand() *discord.Command {
	return discord.NewCommand(
		"removewarn",
		"Elimina una advertencia específica de un usuario",
		"mod",
		removeWarnHandler,
	).WithOptions(
		userOption("usuario", "Usuario del cual eliminar la advertencia", true),
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionInteger,
			Name:         "numero",
			Description:  "Número de la advertencia (ver /mod warnings)",
			Required:     true,
			Autocomplete: true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).WithAutoComplete(removeWarnAutoComplete)
}

// removeWarnHandler handles the /mod removewarn command
func removeWarnHandler(ctx *discord.CommandContext) error {
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario válido.")
	}
	index := int(ctx.GetIntOption("numero"))

	removed, err := ctx.Client.Engine.Warnings.Remove(ctx.Interaction.GuildID, member, index, ctx.Moderator(), ctx.Origin())
	if err != nil {
		return fail(ctx, "CMD-RemoveWarn", err)
	}

	remaining := ctx.Client.Engine.Warnings.Count(ctx.Interaction.GuildID, member.ID)
	return ctx.ReplyEmbed(resultEmbed(
		"✅ Advertencia eliminada con éxito",
		fmt.Sprintf("La advertencia **#%d** de %s ha sido eliminada.\n\n**Razón original:** %s\n**Advertencias restantes:** %d",
			index, member.Mention(), removed.Reason, remaining),
		colorOK, ctx,
	))
}

// removeWarnAutoComplete offers the member's warnings by number
func removeWarnAutoComplete(ctx *discord.CommandContext) {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		_ = ctx.SendAutoCompleteChoices(nil)
		return
	}
	entries := ctx.Client.Engine.Warnings.List(ctx.Interaction.GuildID, user.ID)
	_ = ctx.SendAutoCompleteChoices(warningChoices(entries))
}

func warningChoices(entries []models.WarningEntry) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(entries), maxChoices))
	for i, w := range entries {
		if i >= maxChoices {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(strconv.Itoa(i+1)+" - "+w.Reason, maxChoiceLen),
			Value: i + 1,
		})
	}
	return choices
}
