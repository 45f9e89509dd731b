package levels

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterLevelCommands registers the /levels group
func RegisterLevelCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"levels",
		"Niveles y experiencia",
		createLevelCommand(),
		createLeaderboardCommand(),
		createAddLevelCommand(),
		createRemoveLevelCommand(),
	)
	client.CommandHandler.AddGlobalCommand(group)
}
