// Package events adapts Discord gateway events to the moderation engine
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/engine"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// How long the public spam notice stays in the channel
const noticeTTL = 5 * time.Second

// channelActions is what applying a message outcome needs from Discord
type channelActions interface {
	Delete(channelID, messageID string) error
	Send(channelID, text string) (string, error)
	DeleteLater(channelID, messageID string, after time.Duration)
}

type sessionActions struct {
	s *discordgo.Session
}

func (a sessionActions) Delete(channelID, messageID string) error {
	return a.s.ChannelMessageDelete(channelID, messageID)
}

func (a sessionActions) Send(channelID, text string) (string, error) {
	msg, err := a.s.ChannelMessageSend(channelID, text)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (a sessionActions) DeleteLater(channelID, messageID string, after time.Duration) {
	time.AfterFunc(after, func() {
		_ = a.s.ChannelMessageDelete(channelID, messageID)
	})
}

// RegisterMessageEvents registers the MessageCreate handler
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnMessageCreate(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || m.GuildID == "" {
			return
		}

		channelName := ""
		if ch, err := s.State.Channel(m.ChannelID); err == nil {
			channelName = ch.Name
		}
		guildName := ""
		if g, err := s.State.Guild(m.GuildID); err == nil {
			guildName = g.Name
		}
		ev := messageEvent(m, channelName, guildName)

		out, err := client.Engine.HandleMessage(ev)
		if err != nil {
			logger.Error(fmt.Sprintf("Error procesando mensaje de %s: %v", ev.Author, err), "Message")
		}
		applyOutcome(sessionActions{s}, ev, out)
	})
}

// messageEvent converts the gateway message to the engine event
func messageEvent(m *discordgo.MessageCreate, channelName, guildName string) models.MessageEvent {
	author := discord.MemberRefFromUser(m.Author)
	if m.Member != nil && m.Member.Nick != "" {
		author.DisplayName = m.Member.Nick
	}
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return models.MessageEvent{
		MessageID: m.ID,
		Community: models.CommunityRef{ID: m.GuildID, Name: guildName},
		Channel:   models.ChannelRef{ID: m.ChannelID, Name: channelName},
		Author:    author,
		Bot:       m.Author.Bot,
		Content:   m.Content,
		Timestamp: ts,
	}
}

// applyOutcome deletes suppressed messages with a short-lived notice and
// announces level-ups
func applyOutcome(a channelActions, ev models.MessageEvent, out engine.MessageOutcome) {
	if out.Suppress {
		if err := a.Delete(ev.Channel.ID, ev.MessageID); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo eliminar el mensaje %s: %v", ev.MessageID, err), "Message")
		}
		id, err := a.Send(ev.Channel.ID, suppressNotice(ev.Author, out.Reasons))
		if err == nil {
			a.DeleteLater(ev.Channel.ID, id, noticeTTL)
		}
	}

	if out.LevelUp != nil {
		text := fmt.Sprintf("🎉 ¡Felicidades %s! Has subido al nivel **%d**.", ev.Author.Mention(), out.LevelUp.Level)
		if _, err := a.Send(ev.Channel.ID, text); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo anunciar el nivel de %s: %v", ev.Author, err), "Leveling")
		}
	}
}

func suppressNotice(author models.MemberRef, reasons []string) string {
	var parts []string
	for _, r := range reasons {
		switch r {
		case engine.ReasonSpam:
			parts = append(parts, "no envíes mensajes tan rápido")
		case engine.ReasonBannedWord:
			parts = append(parts, "ese lenguaje no está permitido")
		case engine.ReasonLink:
			parts = append(parts, "no se permiten enlaces")
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "tu mensaje fue eliminado")
	}
	return fmt.Sprintf("⚠️ %s, %s.", author.Mention(), strings.Join(parts, " y "))
}
