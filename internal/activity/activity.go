// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity keeps the audit trail of admin actions: who created, updated,
restored, uploaded or deleted what, and when.

Recording is best effort. A failed insert is logged and swallowed so the
request that triggered it still succeeds.
*/
package activity

import "time"

// Action names what happened to an entity.
type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionRestore    Action = "restore"
	ActionUpload     Action = "upload"
	ActionLogin      Action = "login"
	ActionDeactivate Action = "deactivate"
)

// Entity types used across the API.
const (
	EntityContent = "content"
	EntityMedia   = "media"
	EntityUser    = "user"
)

// Activity is one audit record.
type Activity struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Action     Action    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Filter narrows an activity listing.
type Filter struct {
	EntityTypes []string
	Limit       int
}

const (
	// DefaultLimit is used when the request carries no limit.
	DefaultLimit = 50

	// MaxLimit caps one activity page.
	MaxLimit = 200

	FieldActivity = "activity"
)
