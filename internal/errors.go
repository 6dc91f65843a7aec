package vambrace

import "errors"

// Sentinel errors for the vambrace domain.
var (
	// ErrNotConfigured reports a view behavior constructed without its
	// required configuration. Surfaced at construction so a misconfigured
	// view fails during startup, not on first request.
	ErrNotConfigured = errors.New("not configured")

	// ErrMalformedTimeout reports a cache timeout string that does not match
	// the <digits><unit> form with unit one of m, h, d.
	ErrMalformedTimeout = errors.New("malformed cache timeout")

	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
)
