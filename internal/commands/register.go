// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod, levels, watch)
package commands

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/levels"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/utils"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/watch"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	utils.RegisterUtilsCommands(client)
	mod.RegisterModCommands(client)
	levels.RegisterLevelCommands(client)
	watch.RegisterWatchCommands(client)
}
