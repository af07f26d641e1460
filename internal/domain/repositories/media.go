package repositories

import (
	"context"

	"weddingfolio/internal/domain/models"
)

// MediaRepository defines data access operations for media items
type MediaRepository interface {
	// Create creates a new media record
	Create(ctx context.Context, media *models.Media) error

	// GetByID retrieves a media item scoped to its owner
	GetByID(ctx context.Context, id, ownerID string) (*models.Media, error)

	// GetByIDOnly retrieves a media item without owner scoping (authorization checks)
	GetByIDOnly(ctx context.Context, id string) (*models.Media, error)

	// ListByWedding lists media of one wedding, oldest first
	ListByWedding(ctx context.Context, weddingID, ownerID string) ([]models.Media, error)

	// UpdateClassification stores classification fields (or the failure message)
	UpdateClassification(ctx context.Context, media *models.Media) error

	// MoveToFolder re-files every media item of a wedding under folderID
	MoveToFolder(ctx context.Context, weddingID, ownerID, folderID string) error

	// Delete deletes a media record
	Delete(ctx context.Context, id, ownerID string) error

	// DeleteByWedding deletes all media rows of a wedding, returning their object keys
	DeleteByWedding(ctx context.Context, weddingID, ownerID string) ([]string, error)
}
