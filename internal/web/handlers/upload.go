package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/matejkriz/bookpress/internal/book"
	"github.com/matejkriz/bookpress/internal/constants"
	"github.com/matejkriz/bookpress/internal/database"
	"github.com/matejkriz/bookpress/internal/imaging"
)

// UploadHandler handles photo pool uploads.
type UploadHandler struct {
	store database.AlbumWriter
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store database.AlbumWriter) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload adds multipart image files to an album's photo pool. Each file is
// decoded just enough to learn its natural dimensions; the filename becomes
// the image reference.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	album := loadAlbum(w, r, h.store)
	if album == nil {
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	var added []book.PoolPhoto
	for _, fileHeader := range files {
		photo, err := readPoolPhoto(fileHeader)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("file %s: %v", sanitizeForLog(filepath.Base(fileHeader.Filename)), err))
			return
		}
		added = append(added, photo)
	}

	album.PhotoPool = append(album.PhotoPool, added...)
	if err := h.store.SaveAlbum(r.Context(), album); err != nil {
		log.Printf("saving album %s: %v", sanitizeForLog(album.ID), err)
		respondError(w, http.StatusInternalServerError, "failed to save album")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"uploaded": len(added),
		"poolSize": len(album.PhotoPool),
	})
}

func readPoolPhoto(fileHeader *multipart.FileHeader) (book.PoolPhoto, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return book.PoolPhoto{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return book.PoolPhoto{}, fmt.Errorf("failed to read file: %w", err)
	}

	photo, err := imaging.FromBytes(data)
	if err != nil {
		return book.PoolPhoto{}, err
	}
	photo.ImageRef = filepath.Base(fileHeader.Filename)
	return photo, nil
}
