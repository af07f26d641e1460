package repositories

import (
	"context"

	"weddingfolio/internal/domain/models"
)

// FolderStore is the folder table contract the path resolver depends on.
type FolderStore interface {
	// FindByName looks up a folder by exact (owner, parent, name).
	// A nil parentID matches root-level folders only.
	// Returns (nil, nil) when no such folder exists.
	FindByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error)

	// Create inserts a folder and fills in its ID and CreatedAt.
	// Returns an error matching domain.ErrConflict when a sibling with the
	// same name already exists.
	Create(ctx context.Context, folder *models.Folder) error
}

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	FolderStore

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// ListChildren lists immediate child folders (nil parent = root level)
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error)

	// ListAll retrieves every folder of an owner (flat list)
	ListAll(ctx context.Context, ownerID string) ([]models.Folder, error)

	// GetPath computes the display path for a folder
	GetPath(ctx context.Context, folderID, ownerID string) (string, error)
}
