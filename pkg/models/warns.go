package models

import (
	"time"

	"github.com/goccy/go-json"
)

// WarningEntry is a single warning in a member's ledger
type WarningEntry struct {
	Reason   string    `json:"reason"`
	IssuedBy string    `json:"issued_by,omitempty"`
	IssuedAt time.Time `json:"issued_at,omitempty"`
}

// UnmarshalJSON accepts both the object form and the legacy bare reason string
func (w *WarningEntry) UnmarshalJSON(data []byte) error {
	var reason string
	if err := json.Unmarshal(data, &reason); err == nil {
		*w = WarningEntry{Reason: reason}
		return nil
	}

	type plain WarningEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*w = WarningEntry(p)
	return nil
}
