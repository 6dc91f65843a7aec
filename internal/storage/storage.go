// Package storage defines persistence interfaces for the page server.
package storage

import (
	"context"

	vambrace "github.com/vambrace/vambrace/internal"
)

// PageStore manages page persistence.
type PageStore interface {
	CreatePage(ctx context.Context, p *vambrace.Page) error
	GetPage(ctx context.Context, id string) (*vambrace.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*vambrace.Page, error)
	ListPages(ctx context.Context, offset, limit int) ([]*vambrace.Page, error)
	CountPages(ctx context.Context) (int, error)
	UpdatePage(ctx context.Context, p *vambrace.Page) error
	DeletePage(ctx context.Context, id string) error
}

// Store combines all storage interfaces.
type Store interface {
	PageStore
}
