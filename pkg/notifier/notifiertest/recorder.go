// Package notifiertest provides a recording Notifier for tests.
package notifiertest

import (
	"sync"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// Direct is a recorded direct message
type Direct struct {
	Member models.MemberRef
	Text   string
}

// Announcement is a recorded channel message
type Announcement struct {
	ChannelID string
	Text      string
}

// Recorder records every call. Setting the Fail fields makes the matching
// method return that error instead of recording.
type Recorder struct {
	mu sync.Mutex

	Directs       []Direct
	Audits        []models.AuditRecord
	Announcements []Announcement

	FailDirect   map[string]error
	FailAudit    error
	FailAnnounce error
}

// New returns an empty Recorder
func New() *Recorder {
	return &Recorder{FailDirect: make(map[string]error)}
}

func (r *Recorder) SendDirect(member models.MemberRef, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailDirect[member.ID]; err != nil {
		return err
	}
	r.Directs = append(r.Directs, Direct{Member: member, Text: text})
	return nil
}

func (r *Recorder) SendToAuditChannel(community string, record models.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailAudit != nil {
		return r.FailAudit
	}
	r.Audits = append(r.Audits, record)
	return nil
}

func (r *Recorder) Announce(channelID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailAnnounce != nil {
		return r.FailAnnounce
	}
	r.Announcements = append(r.Announcements, Announcement{ChannelID: channelID, Text: text})
	return nil
}

// DirectsTo returns the direct messages sent to member
func (r *Recorder) DirectsTo(memberID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, d := range r.Directs {
		if d.Member.ID == memberID {
			out = append(out, d.Text)
		}
	}
	return out
}

// AuditActions returns the recorded audit actions in order
func (r *Recorder) AuditActions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Audits))
	for _, a := range r.Audits {
		out = append(out, a.Action)
	}
	return out
}
