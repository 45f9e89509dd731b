package discord

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// EventHandler registers discordgo event handlers
type EventHandler struct {
	client *ExtendedClient
	count  int
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(client *ExtendedClient) *EventHandler {
	return &EventHandler{client: client}
}

// RegisterEvent adds an event handler to the Discord session
func (eh *EventHandler) RegisterEvent(name string, handler interface{}) {
	eh.client.Session.AddHandler(handler)
	eh.count++
	logger.Debug("Evento '"+name+"' registrado", "EventHandler")
}

// Count returns how many handlers were registered
func (eh *EventHandler) Count() int {
	return eh.count
}

// OnReady registers a ready event handler
func (eh *EventHandler) OnReady(handler func(s *discordgo.Session, r *discordgo.Ready)) {
	eh.RegisterEvent("Ready", handler)
}

// OnMessageCreate registers a message create event handler
func (eh *EventHandler) OnMessageCreate(handler func(s *discordgo.Session, m *discordgo.MessageCreate)) {
	eh.RegisterEvent("MessageCreate", handler)
}

// OnPresenceUpdate registers a presence update event handler
func (eh *EventHandler) OnPresenceUpdate(handler func(s *discordgo.Session, p *discordgo.PresenceUpdate)) {
	eh.RegisterEvent("PresenceUpdate", handler)
}

// OnGuildMemberRemove registers a guild member remove event handler
func (eh *EventHandler) OnGuildMemberRemove(handler func(s *discordgo.Session, m *discordgo.GuildMemberRemove)) {
	eh.RegisterEvent("GuildMemberRemove", handler)
}

// OnGuildCreate registers a guild create event handler
func (eh *EventHandler) OnGuildCreate(handler func(s *discordgo.Session, g *discordgo.GuildCreate)) {
	eh.RegisterEvent("GuildCreate", handler)
}
