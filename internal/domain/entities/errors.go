package entities

import "errors"

// Domain errors
var (
	// Fetch errors
	ErrNetwork          = errors.New("network error")
	ErrMalformedPayload = errors.New("malformed payload")

	// Decode errors
	ErrDecode = errors.New("decode error")

	// Record errors
	ErrRecordNotFound    = errors.New("record not found")
	ErrRecordPending     = errors.New("record pending")
	ErrRefreshSuperseded = errors.New("refresh superseded")

	// Object storage errors
	ErrStorage = errors.New("object storage error")

	// Snapshot store errors
	ErrSnapshotUnavailable = errors.New("snapshot store unavailable")

	// Identity errors
	ErrMissingIdentity = errors.New("missing user identity")
)
