package sqlite

import (
	"context"

	vambrace "github.com/vambrace/vambrace/internal"
)

// CreatePage inserts a new page.
func (s *Store) CreatePage(ctx context.Context, p *vambrace.Page) error {
	_, err := s.write.ExecContext(ctx,
		`INSERT INTO pages (id, slug, title, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Title, p.Body, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetPage retrieves a page by id.
func (s *Store) GetPage(ctx context.Context, id string) (*vambrace.Page, error) {
	row := s.read.QueryRowContext(ctx,
		`SELECT id, slug, title, body, created_at, updated_at
		 FROM pages WHERE id=?`, id,
	)
	return scanPage(row)
}

// GetPageBySlug retrieves a page by its canonical slug.
func (s *Store) GetPageBySlug(ctx context.Context, slug string) (*vambrace.Page, error) {
	row := s.read.QueryRowContext(ctx,
		`SELECT id, slug, title, body, created_at, updated_at
		 FROM pages WHERE slug=?`, slug,
	)
	return scanPage(row)
}

// ListPages returns pages ordered by slug.
func (s *Store) ListPages(ctx context.Context, offset, limit int) ([]*vambrace.Page, error) {
	rows, err := s.read.QueryContext(ctx,
		`SELECT id, slug, title, body, created_at, updated_at
		 FROM pages ORDER BY slug LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*vambrace.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// CountPages returns the total number of pages.
func (s *Store) CountPages(ctx context.Context) (int, error) {
	var n int
	err := s.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n)
	return n, err
}

// UpdatePage updates an existing page.
func (s *Store) UpdatePage(ctx context.Context, p *vambrace.Page) error {
	result, err := s.write.ExecContext(ctx,
		`UPDATE pages SET slug=?, title=?, body=?, updated_at=? WHERE id=?`,
		p.Slug, p.Title, p.Body, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "page")
}

// DeletePage removes a page.
func (s *Store) DeletePage(ctx context.Context, id string) error {
	result, err := s.write.ExecContext(ctx, `DELETE FROM pages WHERE id=?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "page")
}

func scanPage(s scanner) (*vambrace.Page, error) {
	var p vambrace.Page
	err := s.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundErr(err)
	}
	return &p, nil
}
