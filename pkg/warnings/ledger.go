// Package warnings keeps the per-member warning ledger of every community.
package warnings

import (
	"fmt"
	"time"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/notifier"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// StoreName is the document holding the ledger
const StoreName = "warnings"

// DefaultReason is used by callers when the moderator gives none
const DefaultReason = "Sin razón especificada"

// AddResult reports the new warning count and whether the member was told.
// Delivery is nil when the direct message went through.
type AddResult struct {
	Count    int
	Delivery error
}

// Ledger is an ordered list of warnings per (community, member)
type Ledger struct {
	store    *store.RecordStore[[]models.WarningEntry]
	notifier notifier.Notifier
	log      *modlog.Log
	now      func() time.Time
}

// NewLedger opens the ledger on backend
func NewLedger(backend store.Backend, n notifier.Notifier, log *modlog.Log) *Ledger {
	if n == nil {
		n = notifier.Nop{}
	}
	if log == nil {
		log = modlog.New(n)
	}
	return &Ledger{
		store:    store.NewRecordStore[[]models.WarningEntry](StoreName, backend),
		notifier: n,
		log:      log,
		now:      time.Now,
	}
}

// Add appends a warning. The reason is stored verbatim, even when empty.
func (l *Ledger) Add(community string, member models.MemberRef, reason string, issuedBy models.MemberRef, origin models.Origin) (AddResult, error) {
	var count int
	entry := models.WarningEntry{Reason: reason, IssuedBy: issuedBy.ID, IssuedAt: l.now()}

	err := l.store.Modify(community, member.ID, func(cur []models.WarningEntry, _ bool) ([]models.WarningEntry, bool, error) {
		next := append(cur, entry)
		count = len(next)
		return next, true, nil
	})
	if err != nil {
		return AddResult{}, err
	}

	logger.Info(fmt.Sprintf("%s advertido en %s por %s (%d en total)", member, community, issuedBy, count), "Warnings")

	result := AddResult{Count: count}
	text := fmt.Sprintf("⚠️ Has recibido una advertencia.\n**Razón:** %s\n**Advertencias totales:** %d", reason, count)
	if err := l.notifier.SendDirect(member, text); err != nil {
		result.Delivery = fmt.Errorf("%w: %v", pgerrors.ErrDeliveryFailure, err)
		logger.Debug(fmt.Sprintf("No se pudo notificar a %s: %v", member, err), "Warnings")
	}

	l.log.Emit(modlog.Entry{
		Action:    modlog.ActionWarn,
		Community: community,
		Target:    member.Mention(),
		Moderator: issuedBy,
		Reason:    reason,
		Origin:    origin,
	})

	return result, nil
}

// List returns the member's warnings in insertion order; never nil
func (l *Ledger) List(community, memberID string) []models.WarningEntry {
	cur, _ := l.store.Get(community, memberID)
	out := make([]models.WarningEntry, len(cur))
	copy(out, cur)
	return out
}

// Count returns how many warnings the member has
func (l *Ledger) Count(community, memberID string) int {
	cur, _ := l.store.Get(community, memberID)
	return len(cur)
}

// Remove deletes the warning at the 1-based index and compacts the list.
// index < 1 or past the end fails with ErrOutOfRange; a member without
// warnings fails with ErrNoWarnings. Nothing changes on failure.
func (l *Ledger) Remove(community string, member models.MemberRef, index int, moderator models.MemberRef, origin models.Origin) (models.WarningEntry, error) {
	if index < 1 {
		return models.WarningEntry{}, fmt.Errorf("%w: %d", pgerrors.ErrOutOfRange, index)
	}

	var removed models.WarningEntry
	err := l.store.Modify(community, member.ID, func(cur []models.WarningEntry, ok bool) ([]models.WarningEntry, bool, error) {
		if !ok || len(cur) == 0 {
			return nil, false, pgerrors.ErrNoWarnings
		}
		if index > len(cur) {
			return nil, false, fmt.Errorf("%w: %d of %d", pgerrors.ErrOutOfRange, index, len(cur))
		}
		removed = cur[index-1]
		next := append(cur[:index-1], cur[index:]...)
		return next, len(next) > 0, nil
	})
	if err != nil {
		return models.WarningEntry{}, err
	}

	logger.Info(fmt.Sprintf("Advertencia #%d de %s eliminada en %s por %s", index, member, community, moderator), "Warnings")

	l.log.Emit(modlog.Entry{
		Action:    modlog.ActionRemoveWarning,
		Community: community,
		Target:    member.Mention(),
		Moderator: moderator,
		Reason:    removed.Reason,
		Origin:    origin,
	})

	return removed, nil
}
