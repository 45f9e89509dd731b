package utils

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

const helpText = "📖 **Ayuda de PancyGuard**\n\n" +
	"**Utilidades**\n" +
	"• `/utils ping` - Comprueba la latencia\n" +
	"• `/utils status` - Estado del bot\n\n" +
	"**Moderación**\n" +
	"• `/mod warn <usuario> [razón]` - Advierte a un usuario\n" +
	"• `/mod warnings <usuario>` - Lista las advertencias\n" +
	"• `/mod removewarn <usuario> <número>` - Elimina una advertencia\n" +
	"• `/mod ban|kick <usuario> [razón]` - Banea o expulsa\n" +
	"• `/mod unban <id>` - Retira un ban\n" +
	"• `/mod mute <usuario> <minutos>` / `/mod unmute <usuario>`\n" +
	"• `/mod ipban <ip> <usuario>` / `/mod unipban <ip>` / `/mod ipbans`\n" +
	"• `/mod clear [cantidad]` / `/mod slowmode <segundos>`\n" +
	"• `/mod lock` / `/mod unlock`\n\n" +
	"**Niveles**\n" +
	"• `/levels level [usuario]` - Nivel y experiencia\n" +
	"• `/levels leaderboard [top]` - Clasificación\n" +
	"• `/levels addlevel|removelevel <usuario> <cantidad>`\n\n" +
	"**Vigilancia**\n" +
	"• `/watch user <usuario>` - Vigila a un usuario\n" +
	"• `/unwatch` - Deja de vigilar"

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		func(ctx *discord.CommandContext) error {
			return ctx.ReplyEphemeral(helpText)
		},
	)
}
