package services

import (
	"context"

	"weddingfolio/internal/domain/models"
)

// PathResolver materializes folder paths for an owner.
type PathResolver interface {
	// EnsurePath guarantees every segment of the path exists under ownerID and
	// returns the leaf folder ID. Blank segments are skipped.
	EnsurePath(ctx context.Context, ownerID string, segments []string) (string, error)
}

// EnsurePathRequest is the HTTP body for POST /api/folders/ensure
type EnsurePathRequest struct {
	Segments []string `json:"segments"`
}

// EnsurePathResponse carries the resolved leaf folder
type EnsurePathResponse struct {
	FolderID string         `json:"folder_id"`
	Folder   *models.Folder `json:"folder,omitempty"`
}

// FolderService handles folder browsing and path materialization
type FolderService interface {
	// EnsureFolderPath resolves the path and returns the leaf folder with its display path
	EnsureFolderPath(ctx context.Context, userID string, req *EnsurePathRequest) (*EnsurePathResponse, error)

	// GetFolder retrieves a folder with its computed path
	GetFolder(ctx context.Context, userID, id string) (*models.Folder, error)

	// ListChildren lists child folders (nil parent = root level)
	ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Folder, error)

	// GetTree returns the user's whole folder hierarchy
	GetTree(ctx context.Context, userID string) ([]*models.FolderTreeNode, error)
}
