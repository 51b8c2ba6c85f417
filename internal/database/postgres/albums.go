package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matejkriz/bookpress/internal/book"
)

// AlbumRepository provides PostgreSQL-backed album storage
type AlbumRepository struct {
	pool *Pool
}

// NewAlbumRepository creates a new AlbumRepository
func NewAlbumRepository(pool *Pool) *AlbumRepository {
	return &AlbumRepository{pool: pool}
}

func newID() string {
	return uuid.New().String()
}

func (r *AlbumRepository) CreateAlbum(ctx context.Context, album *book.Album) error {
	if album.ID == "" {
		album.ID = newID()
	}
	now := time.Now()
	album.CreatedAt = now
	album.UpdatedAt = now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO albums (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		album.ID, album.Title, album.CreatedAt, album.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create album: %w", err)
	}
	if len(album.Pages) > 0 || len(album.PhotoPool) > 0 {
		return r.SaveAlbum(ctx, album)
	}
	return nil
}

func (r *AlbumRepository) GetAlbum(ctx context.Context, id string) (*book.Album, error) {
	var a book.Album
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, created_at, updated_at FROM albums WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get album: %w", err)
	}

	pool, err := r.getPhotoPool(ctx, id)
	if err != nil {
		return nil, err
	}
	a.PhotoPool = pool

	pages, err := r.getPages(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Pages = pages
	return &a, nil
}

func (r *AlbumRepository) ListAlbums(ctx context.Context) ([]book.Album, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, created_at, updated_at FROM albums ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()
	var albums []book.Album
	for rows.Next() {
		var a book.Album
		if err := rows.Scan(&a.ID, &a.Title, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// SaveAlbum replaces the stored pages and photo pool wholesale inside one
// transaction. The page model is replace-whole-object; merging stored and
// incoming pages would reintroduce the aliasing bugs the placement ids
// exist to prevent.
func (r *AlbumRepository) SaveAlbum(ctx context.Context, album *book.Album) error {
	album.UpdatedAt = time.Now()

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save album begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE albums SET title = $1, updated_at = $2 WHERE id = $3`,
		album.Title, album.UpdatedAt, album.ID); err != nil {
		return fmt.Errorf("save album: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM album_pages WHERE album_id = $1`, album.ID); err != nil {
		return fmt.Errorf("clear pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM album_photos WHERE album_id = $1`, album.ID); err != nil {
		return fmt.Errorf("clear photo pool: %w", err)
	}

	for i, p := range album.PhotoPool {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO album_photos (album_id, id, image_ref, width, height, sort_order) VALUES ($1, $2, $3, $4, $5, $6)`,
			album.ID, p.ID, p.ImageRef, p.Width, p.Height, i); err != nil {
			return fmt.Errorf("insert photo %s: %w", p.ID, err)
		}
	}

	for i, page := range album.Pages {
		if page.ID == "" {
			page.ID = newID()
			album.Pages[i] = page
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO album_pages (id, album_id, page_type, layout, left_layout, right_layout, sort_order) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			page.ID, album.ID, string(page.Type), page.Layout, page.LeftLayout, page.RightLayout, i); err != nil {
			return fmt.Errorf("insert page %s: %w", page.ID, err)
		}
		for j, pl := range page.Photos {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO page_placements (page_id, slot_index, id, source_id, image_ref, width, height, pan_scale, pan_x, pan_y)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				page.ID, j, pl.ID, pl.SourceID, pl.ImageRef, pl.Width, pl.Height,
				pl.PanZoom.Scale, pl.PanZoom.X, pl.PanZoom.Y); err != nil {
				return fmt.Errorf("insert placement %s: %w", pl.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save album commit: %w", err)
	}
	return nil
}

func (r *AlbumRepository) DeleteAlbum(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return nil
}

func (r *AlbumRepository) getPhotoPool(ctx context.Context, albumID string) ([]book.PoolPhoto, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, image_ref, width, height FROM album_photos WHERE album_id = $1 ORDER BY sort_order`, albumID)
	if err != nil {
		return nil, fmt.Errorf("get photo pool: %w", err)
	}
	defer rows.Close()
	var photos []book.PoolPhoto
	for rows.Next() {
		var p book.PoolPhoto
		if err := rows.Scan(&p.ID, &p.ImageRef, &p.Width, &p.Height); err != nil {
			return nil, fmt.Errorf("scan pool photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photo pool: %w", err)
	}
	return photos, nil
}

func (r *AlbumRepository) getPages(ctx context.Context, albumID string) ([]book.Page, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, page_type, layout, left_layout, right_layout
		 FROM album_pages WHERE album_id = $1 ORDER BY sort_order`, albumID)
	if err != nil {
		return nil, fmt.Errorf("get pages: %w", err)
	}
	defer rows.Close()
	var pages []book.Page
	for rows.Next() {
		var p book.Page
		var pageType string
		if err := rows.Scan(&p.ID, &pageType, &p.Layout, &p.LeftLayout, &p.RightLayout); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		p.Type = book.PageType(pageType)
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}

	// Batch-load all placements for the album in one query
	plRows, err := r.pool.Query(ctx,
		`SELECT pp.page_id, pp.id, pp.source_id, pp.image_ref, pp.width, pp.height, pp.pan_scale, pp.pan_x, pp.pan_y
		 FROM page_placements pp
		 JOIN album_pages ap ON ap.id = pp.page_id
		 WHERE ap.album_id = $1
		 ORDER BY pp.page_id, pp.slot_index`, albumID)
	if err != nil {
		return nil, fmt.Errorf("get placements: %w", err)
	}
	defer plRows.Close()
	byPage := make(map[string][]book.Placement)
	for plRows.Next() {
		var pageID string
		var pl book.Placement
		if err := plRows.Scan(&pageID, &pl.ID, &pl.SourceID, &pl.ImageRef, &pl.Width, &pl.Height,
			&pl.PanZoom.Scale, &pl.PanZoom.X, &pl.PanZoom.Y); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		byPage[pageID] = append(byPage[pageID], pl)
	}
	if err := plRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate placements: %w", err)
	}

	for i := range pages {
		pages[i].Photos = byPage[pages[i].ID]
	}
	return pages, nil
}
