package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Sentinel errors allow callers to branch with errors.Is while keeping
// human-readable messages.
var (
	// ErrNoMarkers is returned when the marker list is empty.
	// With no markers the filter would be a no-op copy.
	ErrNoMarkers = errors.New("no markers configured: at least one marker substring is required")

	// ErrEmptyMarker is returned when a marker is the empty string.
	// An empty substring matches every block and would delete the report.
	ErrEmptyMarker = errors.New("invalid marker: empty marker would match every block")

	// ErrInvalidConcurrency is returned when batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrEmptyTokenSecret is returned when the token signing secret is empty.
	ErrEmptyTokenSecret = errors.New("invalid token config: secret must not be empty")

	// ErrInvalidTokenTTL is returned when the token lifetime is negative.
	// Zero means the default TTL; negative would mint already-expired tokens.
	ErrInvalidTokenTTL = errors.New("invalid token config: ttl must not be negative")
)
