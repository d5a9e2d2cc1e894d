package vellum

import "errors"

// Sentinel errors reported by commands. The dispatcher converts these into
// {error: ...} responses; nothing in this package panics on bad input.
var (
	// ErrNotFound is returned when a command references an object ID that
	// is not present in the document.
	ErrNotFound = errors.New("object not found")

	// ErrBrushNotFound is returned when a brush ID has no registered preset.
	ErrBrushNotFound = errors.New("brush not found")

	// ErrNoPoints is returned by stroke commands called without input points.
	ErrNoPoints = errors.New("missing points array")

	// ErrUnknownAction is returned by DecodeCommand for actions outside the
	// command vocabulary.
	ErrUnknownAction = errors.New("unknown action")
)
