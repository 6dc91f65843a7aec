// Package testutil provides in-memory fakes shared across tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	vambrace "github.com/vambrace/vambrace/internal"
)

// FakePageStore is an in-memory implementation of storage.PageStore.
type FakePageStore struct {
	mu    sync.RWMutex
	pages map[string]*vambrace.Page // by id
}

// NewFakePageStore returns a FakePageStore with empty collections.
func NewFakePageStore() *FakePageStore {
	return &FakePageStore{pages: make(map[string]*vambrace.Page)}
}

// AddPage inserts a page into the fake store.
func (s *FakePageStore) AddPage(p *vambrace.Page) {
	s.mu.Lock()
	s.pages[p.ID] = p
	s.mu.Unlock()
}

// CreatePage stores a page.
func (s *FakePageStore) CreatePage(_ context.Context, p *vambrace.Page) error {
	s.AddPage(p)
	return nil
}

// GetPage looks up a page by id.
func (s *FakePageStore) GetPage(_ context.Context, id string) (*vambrace.Page, error) {
	s.mu.RLock()
	p, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok {
		return nil, vambrace.ErrNotFound
	}
	return p, nil
}

// GetPageBySlug looks up a page by slug.
func (s *FakePageStore) GetPageBySlug(_ context.Context, slug string) (*vambrace.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, vambrace.ErrNotFound
}

// ListPages returns pages ordered by slug.
func (s *FakePageStore) ListPages(_ context.Context, offset, limit int) ([]*vambrace.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*vambrace.Page, 0, len(s.pages))
	for _, p := range s.pages {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// CountPages returns the number of stored pages.
func (s *FakePageStore) CountPages(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages), nil
}

// UpdatePage replaces a stored page.
func (s *FakePageStore) UpdatePage(_ context.Context, p *vambrace.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[p.ID]; !ok {
		return vambrace.ErrNotFound
	}
	s.pages[p.ID] = p
	return nil
}

// DeletePage removes a page.
func (s *FakePageStore) DeletePage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return vambrace.ErrNotFound
	}
	delete(s.pages, id)
	return nil
}
