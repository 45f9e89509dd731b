// Package modlog emits moderation audit records to the community audit
// channel and, when configured, mirrors them over MQTT.
package modlog

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier"
	"github.com/google/uuid"
)

// Moderation actions
const (
	ActionWarn          = "Warn"
	ActionRemoveWarning = "Remove Warning"
	ActionBan           = "Ban"
	ActionUnban         = "Unban"
	ActionKick          = "Kick"
	ActionMute          = "Mute"
	ActionUnmute        = "Unmute"
	ActionIPBan         = "IP Ban"
	ActionIPUnban       = "IP Unban"
	ActionAddLevels     = "Add Levels"
	ActionRemoveLevels  = "Remove Levels"
	ActionClear         = "Clear Messages"
	ActionSlowmode      = "Slowmode Set"
	ActionLock          = "Lock Channel"
	ActionUnlock        = "Unlock Channel"
)

// TopicPrefix is the MQTT topic root for mirrored records
const TopicPrefix = "pancy/modlog/"

// Publisher mirrors records to a message broker
type Publisher interface {
	Publish(topic string, payload interface{}) error
}

// Entry is what a mutating operation reports
type Entry struct {
	Action    string
	Community string
	Target    string
	Moderator models.MemberRef
	Reason    string
	Origin    models.Origin
}

// Log is the moderation log emitter
type Log struct {
	notifier  notifier.Notifier
	publisher Publisher
	now       func() time.Time
}

// New creates a Log delivering through n. A nil n discards records.
func New(n notifier.Notifier) *Log {
	if n == nil {
		n = notifier.Nop{}
	}
	return &Log{notifier: n, now: time.Now}
}

// WithPublisher mirrors every emitted record through p
func (l *Log) WithPublisher(p Publisher) *Log {
	l.publisher = p
	return l
}

// Emit builds the audit record and delivers it. Delivery problems are logged
// and never returned.
func (l *Log) Emit(e Entry) models.AuditRecord {
	record := models.AuditRecord{
		ID:        uuid.New().String(),
		Action:    e.Action,
		Community: e.Community,
		Target:    e.Target,
		Moderator: e.Moderator,
		Reason:    e.Reason,
		Channel:   e.Origin.Channel,
		Timestamp: l.now(),
	}

	if err := l.notifier.SendToAuditChannel(e.Community, record); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo enviar el registro '%s' de %s: %v", record.Action, e.Community, err), "ModLog")
	}

	if l.publisher != nil {
		if err := l.publisher.Publish(TopicPrefix+e.Community, record); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo publicar el registro '%s' en MQTT: %v", record.Action, err), "ModLog")
		}
	}

	return record
}
