// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Request size constants
const (
	// MaxBodyBytes bounds attendance request bodies. A 4K JPEG data URI fits comfortably.
	MaxBodyBytes = 20 << 20

	// MaxErrorBodyLength is how much of an undecodable response body is quoted in errors
	MaxErrorBodyLength = 200
)

// Server constants
const (
	// ShutdownTimeout is how long in-flight requests get to finish on shutdown
	ShutdownTimeout = 30 * time.Second

	// RequestTimeout cancels handlers that run longer than this
	RequestTimeout = time.Minute
)

// Terminal constants
const (
	// SpinnerInterval is the redraw interval of the submit spinner
	SpinnerInterval = 100 * time.Millisecond
)
