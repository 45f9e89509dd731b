package watcher

import (
	"fmt"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier"
)

// MessageWatcher forwards every message the target sends in a community
type MessageWatcher struct {
	*Table
	notifier notifier.Notifier
}

// NewMessageWatcher creates a watcher with its own table
func NewMessageWatcher(n notifier.Notifier) *MessageWatcher {
	if n == nil {
		n = notifier.Nop{}
	}
	return &MessageWatcher{Table: NewTable(), notifier: n}
}

// OnMessage notifies the observers of the author. Bot messages and direct
// messages are not forwarded. The notice names the channel and community
// only, never the message content.
func (w *MessageWatcher) OnMessage(ev models.MessageEvent) []Delivery {
	if ev.Bot || !ev.InCommunity() {
		return nil
	}
	observers := w.ObserversOf(ev.Author.ID)
	if len(observers) == 0 {
		return nil
	}

	text := messageNotice(ev)
	out := make([]Delivery, 0, len(observers))
	for _, observer := range observers {
		d := Delivery{Observer: observer, Text: text}
		if err := w.notifier.SendDirect(models.MemberRef{ID: observer}, text); err != nil {
			d.Err = fmt.Errorf("%w: %v", pgerrors.ErrDeliveryFailure, err)
			logger.Debug(fmt.Sprintf("No se pudo reenviar el mensaje de %s a %s: %v", ev.Author, observer, err), "Watcher")
		}
		out = append(out, d)
	}
	return out
}

func messageNotice(ev models.MessageEvent) string {
	channel := ev.Channel.Name
	if channel == "" {
		channel = ev.Channel.ID
	}
	community := ev.Community.Name
	if community == "" {
		community = ev.Community.ID
	}
	return fmt.Sprintf("👀 **%s** acaba de enviar un mensaje en #%s en **%s**.", ev.Author, channel, community)
}
