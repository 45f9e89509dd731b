package mod

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/bans"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

const maxBansShown = 20

func identifierOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "ip",
		Description: description,
		Required:    true,
	}
}

// createIPBanCommand creates the /mod ipban subcommand
func createIPBanCommand() *discord.Command {
	return discord.NewCommand(
		"ipban",
		"Registra un identificador externo (IP) como baneado",
		"mod",
		ipBanHandler,
	).WithOptions(
		identifierOption("Identificador a banear"),
		userOption("usuario", "Usuario asociado", true),
		reasonOption("Razón del ban", false),
	).WithUserPermissions(discordgo.PermissionBanMembers)
}

func ipBanHandler(ctx *discord.CommandContext) error {
	identifier := strings.TrimSpace(ctx.GetStringOption("ip"))
	if identifier == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar un identificador.")
	}
	member, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := reasonOrDefault(ctx)
	if _, err := ctx.Client.Engine.Bans.Ban(identifier, member, reason, ctx.Moderator(), ctx.Origin()); err != nil {
		return fail(ctx, "CMD-IPBan", err)
	}
	return ctx.ReplyEphemeral(fmt.Sprintf("🔨 `%s` (%s) ha sido baneado.\n**Razón:** %s", identifier, member.Mention(), reason))
}

// createUnIPBanCommand creates the /mod unipban subcommand
func createUnIPBanCommand() *discord.Command {
	return discord.NewCommand(
		"unipban",
		"Retira un identificador externo de la lista de baneos",
		"mod",
		unIPBanHandler,
	).WithOptions(
		identifierOption("Identificador a desbanear"),
	).WithUserPermissions(discordgo.PermissionBanMembers)
}

func unIPBanHandler(ctx *discord.CommandContext) error {
	identifier := strings.TrimSpace(ctx.GetStringOption("ip"))
	record, err := ctx.Client.Engine.Bans.Unban(identifier, ctx.Moderator(), ctx.Origin())
	if err != nil {
		return fail(ctx, "CMD-UnIPBan", err)
	}
	return ctx.ReplyEphemeral(fmt.Sprintf("✅ `%s` (<@%s>) ya no está baneado.", identifier, record.UserID))
}

// createIPBansCommand creates the /mod ipbans subcommand
func createIPBansCommand() *discord.Command {
	return discord.NewCommand(
		"ipbans",
		"Lista los identificadores baneados",
		"mod",
		ipBansHandler,
	).WithUserPermissions(discordgo.PermissionBanMembers)
}

func ipBansHandler(ctx *discord.CommandContext) error {
	list := ctx.Client.Engine.Bans.List()
	return ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
		Title:       "🔨 Identificadores baneados",
		Description: formatBans(list),
		Color:       colorError,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	})
}

func formatBans(list []bans.Ban) string {
	if len(list) == 0 {
		return "No hay identificadores baneados."
	}
	var b strings.Builder
	for i, ban := range list {
		if i == maxBansShown {
			fmt.Fprintf(&b, "... y %d más", len(list)-maxBansShown)
			break
		}
		fmt.Fprintf(&b, "> `%s` - <@%s>: %s\n", ban.Identifier, ban.Record.UserID, ban.Record.Reason)
	}
	return b.String()
}
