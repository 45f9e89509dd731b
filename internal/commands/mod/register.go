// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		createWarnCommand(),
		createWarningsCommand(),
		createRemoveWarnCommand(),
		createBanCommand(),
		createUnbanCommand(),
		createKickCommand(),
		createMuteCommand(),
		createUnmuteCommand(),
		createIPBanCommand(),
		createUnIPBanCommand(),
		createIPBansCommand(),
		createClearCommand(),
		createSlowmodeCommand(),
		createLockCommand(),
		createUnlockCommand(),
	)

	client.CommandHandler.AddGlobalCommand(modGroup)
}
