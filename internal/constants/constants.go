// Package constants provides shared constants used across the codebase.
package constants

// Upload constants
const (
	// MaxUploadSize is the maximum multipart upload size in bytes (100MB)
	MaxUploadSize = 100 << 20
)
