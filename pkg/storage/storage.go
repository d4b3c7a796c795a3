// Package storage archives uploaded statements on the local filesystem.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a file id is unknown for the user.
var ErrNotFound = errors.New("file not found")

// FileInfo contains metadata about a stored file
type FileInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Path        string    `json:"path"` // Internal storage path
	CreatedAt   time.Time `json:"created_at"`
}

// Storage defines the archive operations
type Storage interface {
	// Upload stores a file and returns its metadata
	Upload(ctx context.Context, userID uuid.UUID, filename string, contentType string, r io.Reader) (*FileInfo, error)

	// Delete removes a file by its ID
	Delete(ctx context.Context, userID uuid.UUID, fileID uuid.UUID) error

	// List returns all files for a user
	List(ctx context.Context, userID uuid.UUID) ([]*FileInfo, error)

	// GetInfo returns metadata for a file
	GetInfo(ctx context.Context, userID uuid.UUID, fileID uuid.UUID) (*FileInfo, error)

	// Prune deletes every file created before cutoff and returns how many were removed
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}
