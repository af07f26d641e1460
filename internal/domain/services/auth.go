package services

import "context"

// ResourceAuthorizer checks if a user can access resources.
// Ownership is the only rule today: a user can access what they created.
type ResourceAuthorizer interface {
	// CanAccessWedding checks if user can access a wedding
	CanAccessWedding(ctx context.Context, userID, weddingID string) error

	// CanAccessMedia checks if user can access a media item
	CanAccessMedia(ctx context.Context, userID, mediaID string) error
}
