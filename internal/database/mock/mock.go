// Package mock provides in-memory repository implementations for tests and
// for running the CLI without a database.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/template"
)

// Store is an in-memory AlbumWriter and TemplateWriter.
type Store struct {
	mu        sync.RWMutex
	albums    map[string]book.Album
	templates map[string]template.Template
}

func NewStore() *Store {
	return &Store{
		albums:    make(map[string]book.Album),
		templates: make(map[string]template.Template),
	}
}

func (s *Store) GetAlbum(ctx context.Context, id string) (*book.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.albums[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *Store) ListAlbums(ctx context.Context) ([]book.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]book.Album, 0, len(s.albums))
	for _, a := range s.albums {
		a.Pages = nil
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateAlbum(ctx context.Context, album *book.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if album.ID == "" {
		album.ID = uuid.NewString()
	}
	now := time.Now()
	album.CreatedAt = now
	album.UpdatedAt = now
	s.albums[album.ID] = *album
	return nil
}

func (s *Store) SaveAlbum(ctx context.Context, album *book.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	album.UpdatedAt = time.Now()
	if existing, ok := s.albums[album.ID]; ok {
		album.CreatedAt = existing.CreatedAt
	}
	s.albums[album.ID] = *album
	return nil
}

func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.albums, id)
	return nil
}

func (s *Store) ListCustomTemplates(ctx context.Context) ([]template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]template.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveCustomTemplate(ctx context.Context, tmpl template.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tmpl.ID] = tmpl
	return nil
}

func (s *Store) DeleteCustomTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, id)
	return nil
}
