package database

import (
	"context"
	"fmt"
)

var (
	postgresAlbumWriter    func() AlbumWriter
	postgresTemplateWriter func() TemplateWriter
	postgresInitialized    bool
)

// RegisterPostgresBackend registers PostgreSQL repository constructors.
// This is called by the postgres package to avoid import cycles.
func RegisterPostgresBackend(
	albumWriter func() AlbumWriter,
	templateWriter func() TemplateWriter,
) {
	postgresAlbumWriter = albumWriter
	postgresTemplateWriter = templateWriter
	postgresInitialized = true
}

// IsInitialized returns whether the PostgreSQL backend has been initialized.
func IsInitialized() bool {
	return postgresInitialized
}

// GetAlbumWriter returns an AlbumWriter from the PostgreSQL backend
func GetAlbumWriter(ctx context.Context) (AlbumWriter, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresAlbumWriter == nil {
		return nil, fmt.Errorf("PostgreSQL album writer not registered")
	}
	return postgresAlbumWriter(), nil
}

// GetAlbumReader returns an AlbumReader from the PostgreSQL backend
func GetAlbumReader(ctx context.Context) (AlbumReader, error) {
	return GetAlbumWriter(ctx)
}

// GetTemplateWriter returns a TemplateWriter from the PostgreSQL backend
func GetTemplateWriter(ctx context.Context) (TemplateWriter, error) {
	if !postgresInitialized {
		return nil, fmt.Errorf("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresTemplateWriter == nil {
		return nil, fmt.Errorf("PostgreSQL template writer not registered")
	}
	return postgresTemplateWriter(), nil
}
