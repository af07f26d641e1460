package repositories

import (
	"context"

	"weddingfolio/internal/domain/models"
)

// WeddingRepository defines data access operations for weddings
type WeddingRepository interface {
	// Create creates a new wedding
	Create(ctx context.Context, wedding *models.Wedding) error

	// GetByID retrieves a wedding scoped to its owner
	GetByID(ctx context.Context, id, ownerID string) (*models.Wedding, error)

	// GetByIDOnly retrieves a wedding without owner scoping (authorization checks)
	GetByIDOnly(ctx context.Context, id string) (*models.Wedding, error)

	// List lists an owner's weddings, most recent wedding date first
	List(ctx context.Context, ownerID string) ([]models.Wedding, error)

	// Update updates a wedding
	Update(ctx context.Context, wedding *models.Wedding) error

	// Delete deletes a wedding
	Delete(ctx context.Context, id, ownerID string) error
}
