package auth

import (
	"context"
	"fmt"

	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/repositories"
	"weddingfolio/internal/domain/services"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a wedding they created and any media attached to it.
//
// Unknown resources report domain.ErrNotFound; resources owned by someone
// else report domain.ErrForbidden.
type OwnerBasedAuthorizer struct {
	weddingRepo repositories.WeddingRepository
	mediaRepo   repositories.MediaRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	weddingRepo repositories.WeddingRepository,
	mediaRepo repositories.MediaRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		weddingRepo: weddingRepo,
		mediaRepo:   mediaRepo,
	}
}

var _ services.ResourceAuthorizer = (*OwnerBasedAuthorizer)(nil)

// CanAccessWedding checks if user owns the wedding
func (a *OwnerBasedAuthorizer) CanAccessWedding(ctx context.Context, userID, weddingID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}

	// Get wedding by ID only (no owner scoping)
	wedding, err := a.weddingRepo.GetByIDOnly(ctx, weddingID)
	if err != nil {
		return fmt.Errorf("get wedding for auth: %w", err)
	}

	if wedding.OwnerID != userID {
		return fmt.Errorf("access denied to wedding %s: %w", weddingID, domain.ErrForbidden)
	}
	return nil
}

// CanAccessMedia checks if user can access a media item (via its wedding)
func (a *OwnerBasedAuthorizer) CanAccessMedia(ctx context.Context, userID, mediaID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}

	media, err := a.mediaRepo.GetByIDOnly(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("get media for auth: %w", err)
	}

	if media.OwnerID != userID {
		return fmt.Errorf("access denied to media %s: %w", mediaID, domain.ErrForbidden)
	}
	return a.CanAccessWedding(ctx, userID, media.WeddingID)
}
