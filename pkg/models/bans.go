package models

import "time"

// BanRecord is the metadata stored for a banned external identifier
type BanRecord struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Reason    string    `json:"reason"`
	Moderator string    `json:"moderator"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
}
