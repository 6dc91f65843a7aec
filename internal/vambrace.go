// Package vambrace defines domain types and interfaces for the vambrace page
// server. This package has no project imports -- it is the dependency root.
package vambrace

import (
	"context"
	"time"
)

// --- Pages ---

// Page is a stored content page served by the demo views.
type Page struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanonicalSlug returns the authoritative URL slug for the page.
func (p *Page) CanonicalSlug() string { return p.Slug }

// --- Render context ---

// ContextData is the mutable render context handed to a template. Behaviors
// add values to it before the response is rendered.
type ContextData map[string]any

// Merge copies all entries of other into d, overwriting existing keys.
func (d ContextData) Merge(other ContextData) {
	for k, v := range other {
		d[k] = v
	}
}

// --- Request metadata ---

type ctxKey int

const ctxKeyMeta ctxKey = iota

// requestMeta bundles per-request values into a single context allocation.
type requestMeta struct {
	RequestID string
}

// metaFromContext returns the requestMeta stored in ctx, or nil.
func metaFromContext(ctx context.Context) *requestMeta {
	m, _ := ctx.Value(ctxKeyMeta).(*requestMeta)
	return m
}

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if m := metaFromContext(ctx); m != nil {
		return m.RequestID
	}
	return ""
}

// ContextWithRequestID returns a context carrying the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyMeta, &requestMeta{RequestID: id})
}
