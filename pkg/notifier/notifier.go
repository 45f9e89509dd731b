// Package notifier defines how the moderation core reaches members and channels.
package notifier

import "github.com/PancyStudios/PancyGuardGo/pkg/models"

// Notifier delivers text and audit records on the chat platform.
// SendToAuditChannel returns nil when the community has no audit channel.
type Notifier interface {
	SendDirect(member models.MemberRef, text string) error
	SendToAuditChannel(community string, record models.AuditRecord) error
	Announce(channelID, text string) error
}

// Nop discards everything
type Nop struct{}

func (Nop) SendDirect(models.MemberRef, string) error           { return nil }
func (Nop) SendToAuditChannel(string, models.AuditRecord) error { return nil }
func (Nop) Announce(string, string) error                       { return nil }
