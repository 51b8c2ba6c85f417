package database

import (
	"context"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/template"
)

// AlbumReader provides read-only access to stored albums
type AlbumReader interface {
	// GetAlbum retrieves an album with its pages and photo pool, returns nil if not found
	GetAlbum(ctx context.Context, id string) (*book.Album, error)
	// ListAlbums returns all albums without their pages, newest first
	ListAlbums(ctx context.Context) ([]book.Album, error)
}

// AlbumWriter provides write access to albums
type AlbumWriter interface {
	AlbumReader

	// CreateAlbum stores a new album, assigning an id when none is set
	CreateAlbum(ctx context.Context, album *book.Album) error

	// SaveAlbum replaces the album's pages and photo pool as a whole.
	// Pages are value objects here: the stored state after SaveAlbum is
	// exactly the passed album, never a merge.
	SaveAlbum(ctx context.Context, album *book.Album) error

	// DeleteAlbum removes an album and everything under it
	DeleteAlbum(ctx context.Context, id string) error
}

// TemplateReader provides read-only access to stored custom templates
type TemplateReader interface {
	// ListCustomTemplates returns all stored custom templates
	ListCustomTemplates(ctx context.Context) ([]template.Template, error)
}

// TemplateWriter provides write access to custom templates
type TemplateWriter interface {
	TemplateReader

	// SaveCustomTemplate stores a custom template with its regions
	SaveCustomTemplate(ctx context.Context, tmpl template.Template) error

	// DeleteCustomTemplate removes a custom template
	DeleteCustomTemplate(ctx context.Context, id string) error
}
