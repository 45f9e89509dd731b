// Package watch provides /watch user and /unwatch
package watch

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWatchUserCommand creates the /watch user subcommand
func createWatchUserCommand() *discord.Command {
	return discord.NewCommand(
		"user",
		"Recibe por MD la actividad de un usuario",
		"watch",
		watchUserHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a vigilar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

func watchUserHandler(ctx *discord.CommandContext) error {
	target, ok := ctx.GetMemberOption("usuario")
	if !ok {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	observer := ctx.Moderator()
	if target.ID == observer.ID {
		return ctx.ReplyEphemeral("❌ No puedes vigilarte a ti mismo.")
	}

	eng := ctx.Client.Engine
	prev, had := eng.WatchTable().Watch(observer.ID, target.ID)

	msg := fmt.Sprintf("👀 Ahora vigilas a %s. %s", target.Mention(), modeHint(eng.WatchMode()))
	if had && prev != target.ID {
		msg += fmt.Sprintf("\nYa no vigilas a <@%s>.", prev)
	}
	return ctx.ReplyEphemeral(msg)
}

// createUnwatchCommand creates the /unwatch command
func createUnwatchCommand() *discord.Command {
	return discord.NewCommand(
		"unwatch",
		"Deja de vigilar al usuario actual",
		"watch",
		unwatchHandler,
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

func unwatchHandler(ctx *discord.CommandContext) error {
	table := ctx.Client.Engine.WatchTable()
	observer := ctx.Moderator().ID

	target, ok := table.Target(observer)
	if !ok || !table.Unwatch(observer) {
		return ctx.ReplyEphemeral("ℹ️ No estás vigilando a nadie.")
	}
	return ctx.ReplyEphemeral(fmt.Sprintf("✅ Ya no vigilas a <@%s>.", target))
}

func modeHint(mode string) string {
	if mode == config.WatchPresence {
		return "Recibirás un MD cuando cambie su actividad."
	}
	return "Recibirás un MD con cada mensaje que envíe."
}

// RegisterWatchCommands registers /watch and /unwatch
func RegisterWatchCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"watch",
		"Vigilancia de usuarios",
		createWatchUserCommand(),
	)
	client.CommandHandler.AddGlobalCommand(group)
	client.CommandHandler.RegisterCommand(createUnwatchCommand())
}
