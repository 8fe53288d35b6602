package models

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens when a directory or file cannot be read.
type ErrorPolicy string

const (
	// PolicyAbort stops the whole scan on the first unreadable path.
	PolicyAbort ErrorPolicy = "abort"
	// PolicySkip records the unreadable path, logs a warning and keeps going.
	PolicySkip ErrorPolicy = "skip"
)

// ParseErrorPolicy converts a user-supplied string into an ErrorPolicy.
// An empty string yields PolicyAbort.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyAbort):
		return PolicyAbort, nil
	case string(PolicySkip):
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("invalid error policy %q, must be one of: abort, skip", s)
	}
}
