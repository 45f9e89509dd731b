// Package main provides a utility to sync Discord slash commands.
// This removes stale commands from Discord and ensures only currently-defined commands are registered.
//
// Usage:
//
//	go run ./cmd/sync-commands [options]
//
// Options:
//
//	-list           List all registered commands (global and guild)
//	-clean          Remove all commands without registering new ones
//	-guild <id>     Target a specific guild instead of global commands
//	-sync           Sync commands (remove stale, register current) - default behavior
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/PancyStudios/PancyGuardGo/internal/commands"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

func main() {
	listCmd := flag.Bool("list", false, "List all registered commands")
	cleanCmd := flag.Bool("clean", false, "Remove all commands without registering new ones")
	guildID := flag.String("guild", "", "Target a specific guild (leave empty for global)")
	flag.Bool("sync", true, "Sync commands (remove stale, register current)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando utilidad de sincronización de comandos...", "SyncCommands")

	client, err := discord.NewClient(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "SyncCommands")
		os.Exit(1)
	}

	if err := client.Session.Open(); err != nil {
		logger.Critical(fmt.Sprintf("Error connecting to Discord: %v", err), "SyncCommands")
		os.Exit(1)
	}
	defer client.Session.Close()

	logger.Success("Conectado a Discord", "SyncCommands")

	// Definitions only; handlers never run here
	commands.RegisterAll(client)

	scope := "globales"
	if *guildID != "" {
		scope = "del servidor " + *guildID
	}

	switch {
	case *listCmd:
		cmds, err := client.CommandHandler.List(*guildID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error obteniendo comandos %s: %v", scope, err), "SyncCommands")
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Comandos %s: %d", scope, len(cmds)), "SyncCommands")
		for i, cmd := range cmds {
			logger.Info(fmt.Sprintf("  %d. /%s - %s (ID: %s)", i+1, cmd.Name, cmd.Description, cmd.ID), "SyncCommands")
		}
	case *cleanCmd:
		if err := client.CommandHandler.Clear(*guildID); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando comandos %s: %v", scope, err), "SyncCommands")
			os.Exit(1)
		}
		logger.Success(fmt.Sprintf("✅ Comandos %s eliminados", scope), "SyncCommands")
	default:
		cmds, err := client.CommandHandler.Sync(*guildID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error sincronizando comandos %s: %v", scope, err), "SyncCommands")
			os.Exit(1)
		}
		logger.Success(fmt.Sprintf("✅ %d comandos %s sincronizados", len(cmds), scope), "SyncCommands")
	}
}
