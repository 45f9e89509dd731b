// Package utils provides the /utils command group
package utils

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterUtilsCommands registers all utility commands as /utils subcommands
func RegisterUtilsCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"utils",
		"Comandos de utilidad",
		createPingCommand(),
		createStatusCommand(),
		createHelpCommand(),
	)

	client.CommandHandler.AddGlobalCommand(group)
}
