// Package bans keeps the identifier ban registry. The registry is a local
// cross-reference table; blocking access is left to the platform.
package bans

import (
	"fmt"
	"time"

	pgerrors "github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// StoreName is the document holding the registry
const StoreName = "bans"

// Ban is a registry entry
type Ban struct {
	Identifier string           `json:"identifier"`
	Record     models.BanRecord `json:"record"`
}

// Registry maps opaque identifiers to ban records. It is shared by every
// community.
type Registry struct {
	doc *store.Document[*store.OrderedMap[models.BanRecord]]
	log *modlog.Log
	now func() time.Time
}

// NewRegistry opens the registry on backend
func NewRegistry(backend store.Backend, log *modlog.Log) *Registry {
	if log == nil {
		log = modlog.New(nil)
	}
	return &Registry{
		doc: store.OpenDocument(StoreName, backend, store.NewOrderedMap[models.BanRecord]),
		log: log,
		now: time.Now,
	}
}

// Ban records identifier as banned. A second ban replaces the first record.
func (r *Registry) Ban(identifier string, member models.MemberRef, reason string, moderator models.MemberRef, origin models.Origin) (models.BanRecord, error) {
	record := models.BanRecord{
		UserID:    member.ID,
		UserName:  member.DisplayName,
		Reason:    reason,
		Moderator: moderator.ID,
		IssuedAt:  r.now(),
	}

	err := r.doc.Update(func(m *store.OrderedMap[models.BanRecord]) error {
		m.Set(identifier, record)
		return nil
	})
	if err != nil {
		return models.BanRecord{}, err
	}

	logger.Info(fmt.Sprintf("Identificador %s baneado (%s) por %s", identifier, member, moderator), "Bans")

	r.log.Emit(modlog.Entry{
		Action:    modlog.ActionIPBan,
		Community: origin.Community,
		Target:    fmt.Sprintf("%s (%s)", member.Mention(), identifier),
		Moderator: moderator,
		Reason:    reason,
		Origin:    origin,
	})
	return record, nil
}

// Unban removes identifier and returns its record, or ErrNotFound
func (r *Registry) Unban(identifier string, moderator models.MemberRef, origin models.Origin) (models.BanRecord, error) {
	var removed models.BanRecord
	err := r.doc.Update(func(m *store.OrderedMap[models.BanRecord]) error {
		cur, ok := m.Get(identifier)
		if !ok {
			return fmt.Errorf("%w: %s", pgerrors.ErrNotFound, identifier)
		}
		removed = cur
		m.Delete(identifier)
		return nil
	})
	if err != nil {
		return models.BanRecord{}, err
	}

	logger.Info(fmt.Sprintf("Identificador %s desbaneado por %s", identifier, moderator), "Bans")

	r.log.Emit(modlog.Entry{
		Action:    modlog.ActionIPUnban,
		Community: origin.Community,
		Target:    fmt.Sprintf("<@%s> (%s)", removed.UserID, identifier),
		Moderator: moderator,
		Reason:    removed.Reason,
		Origin:    origin,
	})
	return removed, nil
}

// Lookup returns the record of identifier
func (r *Registry) Lookup(identifier string) (models.BanRecord, bool) {
	var (
		record models.BanRecord
		ok     bool
	)
	r.doc.Read(func(m *store.OrderedMap[models.BanRecord]) {
		record, ok = m.Get(identifier)
	})
	return record, ok
}

// List returns every ban in storage order
func (r *Registry) List() []Ban {
	var out []Ban
	r.doc.Read(func(m *store.OrderedMap[models.BanRecord]) {
		out = make([]Ban, 0, m.Len())
		for _, e := range m.Entries() {
			out = append(out, Ban{Identifier: e.Key, Record: e.Value})
		}
	})
	return out
}
