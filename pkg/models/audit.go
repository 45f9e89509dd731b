package models

import "time"

// AuditRecord is a structured moderation log entry delivered to the audit channel
type AuditRecord struct {
	ID        string     `json:"id"`
	Action    string     `json:"action"`
	Community string     `json:"community"`
	Target    string     `json:"target"`
	Moderator MemberRef  `json:"moderator"`
	Reason    string     `json:"reason"`
	Channel   ChannelRef `json:"channel"`
	Timestamp time.Time  `json:"timestamp"`
}
