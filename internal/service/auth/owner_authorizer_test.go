package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/repositories"
)

type weddingLookup struct {
	repositories.WeddingRepository
	weddings map[string]*models.Wedding
}

func (r weddingLookup) GetByIDOnly(ctx context.Context, id string) (*models.Wedding, error) {
	if w, ok := r.weddings[id]; ok {
		return w, nil
	}
	return nil, domain.ErrNotFound
}

type mediaLookup struct {
	repositories.MediaRepository
	media map[string]*models.Media
}

func (r mediaLookup) GetByIDOnly(ctx context.Context, id string) (*models.Media, error) {
	if m, ok := r.media[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func newTestAuthorizer() *OwnerBasedAuthorizer {
	weddings := weddingLookup{weddings: map[string]*models.Wedding{
		"w-ana": {ID: "w-ana", OwnerID: "studio-a"},
		"w-bia": {ID: "w-bia", OwnerID: "studio-b"},
	}}
	media := mediaLookup{media: map[string]*models.Media{
		"m-ana":     {ID: "m-ana", OwnerID: "studio-a", WeddingID: "w-ana"},
		"m-bia":     {ID: "m-bia", OwnerID: "studio-b", WeddingID: "w-bia"},
		"m-crossed": {ID: "m-crossed", OwnerID: "studio-a", WeddingID: "w-bia"},
	}}
	return NewOwnerBasedAuthorizer(weddings, media)
}

func TestCanAccessWedding(t *testing.T) {
	a := newTestAuthorizer()
	ctx := context.Background()

	assert.NoError(t, a.CanAccessWedding(ctx, "studio-a", "w-ana"))
	assert.ErrorIs(t, a.CanAccessWedding(ctx, "studio-a", "w-bia"), domain.ErrForbidden)
	assert.ErrorIs(t, a.CanAccessWedding(ctx, "studio-a", "w-missing"), domain.ErrNotFound)
	assert.ErrorIs(t, a.CanAccessWedding(ctx, "", "w-ana"), domain.ErrUnauthorized)
}

func TestCanAccessMedia(t *testing.T) {
	a := newTestAuthorizer()
	ctx := context.Background()

	assert.NoError(t, a.CanAccessMedia(ctx, "studio-a", "m-ana"))
	assert.ErrorIs(t, a.CanAccessMedia(ctx, "studio-a", "m-bia"), domain.ErrForbidden)
	assert.ErrorIs(t, a.CanAccessMedia(ctx, "studio-a", "m-missing"), domain.ErrNotFound)

	// Owning the row is not enough when the wedding belongs to someone else
	assert.ErrorIs(t, a.CanAccessMedia(ctx, "studio-a", "m-crossed"), domain.ErrForbidden)
}
