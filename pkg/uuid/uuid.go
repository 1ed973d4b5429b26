// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues identifiers for rows created by the in-memory store and
for session ids.

Values are UUIDv7 so rows created later sort after rows created earlier, the
same order the remote store gives its generated keys.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical text form.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// The clock or entropy source is broken.
		panic("uuid: generate v7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether value parses as a UUID of any version.
func Valid(value string) bool {
	return uuid.Validate(value) == nil
}
