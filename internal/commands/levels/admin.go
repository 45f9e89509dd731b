package levels

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/leveling"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

type shiftFunc func(e *leveling.Engine, community string, member models.MemberRef, n int, moderator models.MemberRef, origin models.Origin) (leveling.Progress, error)

func adminOptions(verb string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cantidad",
			Description: "Niveles a " + verb,
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    leveling.MaxLevel,
		},
	}
}

// createAddLevelCommand creates the /levels addlevel subcommand
func createAddLevelCommand() *discord.Command {
	return discord.NewCommand(
		"addlevel",
		"Sube niveles a un usuario",
		"levels",
		shiftHandler((*leveling.Engine).AddLevels, "⬆️ %s ahora es nivel **%d**."),
	).WithOptions(adminOptions("añadir")...).
		WithUserPermissions(discordgo.PermissionManageGuild)
}

// createRemoveLevelCommand creates the /levels removelevel subcommand
func createRemoveLevelCommand() *discord.Command {
	return discord.NewCommand(
		"removelevel",
		"Quita niveles a un usuario",
		"levels",
		shiftHandler((*leveling.Engine).RemoveLevels, "⬇️ %s ahora es nivel **%d**."),
	).WithOptions(adminOptions("quitar")...).
		WithUserPermissions(discordgo.PermissionManageGuild)
}

func shiftHandler(shift shiftFunc, format string) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		member, ok := ctx.GetMemberOption("usuario")
		if !ok {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}
		n := ctx.GetIntOption("cantidad")
		if n < 1 || n > leveling.MaxLevel {
			return ctx.ReplyEphemeral(fmt.Sprintf("❌ La cantidad debe estar entre 1 y %d.", leveling.MaxLevel))
		}

		p, err := shift(ctx.Client.Engine.Levels, ctx.Interaction.GuildID, member, int(n), ctx.Moderator(), ctx.Origin())
		switch {
		case pgerrors.Is(err, pgerrors.ErrOutOfRange):
			return ctx.ReplyEphemeral(fmt.Sprintf("❌ La cantidad debe estar entre 1 y %d.", leveling.MaxLevel))
		case err != nil:
			logger.Error(fmt.Sprintf("Error cambiando niveles de %s: %v", member, err), "CMD-Levels")
			return ctx.ReplyEphemeral("❌ No se pudo guardar el cambio. Inténtalo de nuevo más tarde.")
		}

		return ctx.Reply(fmt.Sprintf(format, member.Mention(), p.Level))
	}
}
