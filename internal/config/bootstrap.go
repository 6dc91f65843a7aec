package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	vambrace "github.com/vambrace/vambrace/internal"
	"github.com/vambrace/vambrace/internal/storage"
)

// Bootstrap seeds the database from the config file on first run. Pages that
// already exist (by slug) are left untouched.
func Bootstrap(ctx context.Context, cfg *Config, store storage.PageStore) error {
	for _, p := range cfg.Pages {
		if p.Slug == "" {
			continue
		}
		existing, _ := store.GetPageBySlug(ctx, p.Slug)
		if existing != nil {
			continue
		}
		now := time.Now().UTC()
		page := &vambrace.Page{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Slug:      p.Slug,
			Title:     p.Title,
			Body:      p.Body,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.CreatePage(ctx, page); err != nil {
			return err
		}
		slog.Info("bootstrapped page", "slug", p.Slug)
	}
	return nil
}
