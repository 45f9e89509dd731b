package discord

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// CommandHandler manages command registration
type CommandHandler struct {
	client           *ExtendedClient
	slashCommands    []*discordgo.ApplicationCommand
	slashCommandsDev []*discordgo.ApplicationCommand
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client:           client,
		slashCommands:    make([]*discordgo.ApplicationCommand, 0),
		slashCommandsDev: make([]*discordgo.ApplicationCommand, 0),
	}
}

// RegisterCommand adds a top-level command
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)

	appCmd := cmd.ToApplicationCommand()
	if cmd.IsDev {
		ch.slashCommandsDev = append(ch.slashCommandsDev, appCmd)
	} else {
		ch.slashCommands = append(ch.slashCommands, appCmd)
	}

	logger.Debug("Comando registrado: "+cmd.Name, "CommandHandler")
}

// BuildCommandGroup registers subcommands as "<name>.<sub>" and returns the
// group definition. The group takes the union of the subcommand permissions
// as its default, so members without any of them do not see it.
func (ch *CommandHandler) BuildCommandGroup(name, description string, subcommands ...*Command) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(subcommands))

	var (
		perms     int64
		guildOnly bool
		allGated  = len(subcommands) > 0
	)
	for _, cmd := range subcommands {
		ch.client.Commands.Set(name+"."+cmd.Name, cmd)
		logger.Debug("Subcomando registrado: "+name+"."+cmd.Name, "CommandHandler")

		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		})

		if cmd.UserPermissions == 0 {
			allGated = false
		}
		perms |= cmd.UserPermissions
		guildOnly = guildOnly || cmd.GuildOnly
	}

	group := &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options:     options,
	}
	if allGated {
		group.DefaultMemberPermissions = &perms
	}
	if guildOnly {
		dm := false
		group.DMPermission = &dm
	}
	return group
}

// RegisterCommands pushes every slash command to Discord
func (ch *CommandHandler) RegisterCommands() {
	cfg := config.Get()
	appID := ch.client.Session.State.User.ID

	logger.Info("🔄 Registrando comandos globales...", "CommandHandler")
	if _, err := ch.client.Session.ApplicationCommandBulkOverwrite(appID, "", ch.slashCommands); err != nil {
		logger.Error("Error registrando comandos: "+err.Error(), "CommandHandler")
	} else {
		logger.Success("✅ Comandos globales registrados.", "CommandHandler")
	}

	if cfg.DevGuildID != "" && len(ch.slashCommandsDev) > 0 {
		logger.Info("🔄 Registrando comandos de desarrollo en el servidor "+cfg.DevGuildID+"...", "CommandHandler")
		if _, err := ch.client.Session.ApplicationCommandBulkOverwrite(appID, cfg.DevGuildID, ch.slashCommandsDev); err != nil {
			logger.Error("Error registrando comandos de desarrollo: "+err.Error(), "CommandHandler")
		} else {
			logger.Success("✅ Comandos de desarrollo registrados.", "CommandHandler")
		}
	}
}

// AddGlobalCommand adds a command to the global command list
func (ch *CommandHandler) AddGlobalCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommands = append(ch.slashCommands, cmd)
}

// GlobalCommands returns the definitions that will be pushed to Discord
func (ch *CommandHandler) GlobalCommands() []*discordgo.ApplicationCommand {
	return ch.slashCommands
}

// List returns the commands Discord has registered, globally when guildID is empty
func (ch *CommandHandler) List(guildID string) ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, guildID)
}

// Clear removes every registered command, globally when guildID is empty
func (ch *CommandHandler) Clear(guildID string) error {
	_, err := ch.client.Session.ApplicationCommandBulkOverwrite(ch.client.Session.State.User.ID, guildID, []*discordgo.ApplicationCommand{})
	return err
}

// Sync replaces the registered commands with the local definitions. Stale
// commands disappear because bulk overwrite drops anything not listed.
func (ch *CommandHandler) Sync(guildID string) ([]*discordgo.ApplicationCommand, error) {
	cmds := ch.slashCommands
	if guildID != "" {
		cmds = append(append([]*discordgo.ApplicationCommand{}, ch.slashCommands...), ch.slashCommandsDev...)
	}
	return ch.client.Session.ApplicationCommandBulkOverwrite(ch.client.Session.State.User.ID, guildID, cmds)
}
