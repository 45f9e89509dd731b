// Package models holds the value types shared by the moderation core.
package models

import "time"

// MemberRef is the minimal view of a platform member the core needs
type MemberRef struct {
	ID          string `json:"id" bson:"id"`
	DisplayName string `json:"display_name,omitempty" bson:"display_name,omitempty"`
}

// String returns the display name, falling back to the ID
func (m MemberRef) String() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.ID
}

// Mention returns the Discord mention markup for the member
func (m MemberRef) Mention() string {
	return "<@" + m.ID + ">"
}

// ChannelRef identifies a channel inside a community
type ChannelRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// CommunityRef identifies a guild
type CommunityRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Origin describes where a moderator command was issued
type Origin struct {
	Community string     `json:"community"`
	Channel   ChannelRef `json:"channel"`
}

// MessageEvent is an inbound chat message
type MessageEvent struct {
	MessageID string
	Community CommunityRef
	Channel   ChannelRef
	Author    MemberRef
	Bot       bool
	Content   string
	Timestamp time.Time
}

// InCommunity reports whether the message was sent inside a guild
func (e MessageEvent) InCommunity() bool {
	return e.Community.ID != ""
}

// PresenceEvent is a change of a member's public activities
type PresenceEvent struct {
	Member   MemberRef
	Previous []string
	Current  []string
}
