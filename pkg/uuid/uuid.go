// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the time-ordered identifiers used to correlate requests.

Version 7 values sort by creation time, so request ids in the logs line up
with arrival order without an extra timestamp field.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
// Inbound X-Request-ID headers that fail this check are replaced.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
