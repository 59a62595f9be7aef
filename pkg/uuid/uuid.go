// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid issues the identifiers stored in every Folio table.
//
// Values are UUIDv7, so ids sort by creation time and keep the primary key
// B-tree append-mostly.
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical text form.
// It panics only when the system entropy source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
