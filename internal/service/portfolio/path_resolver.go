package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"weddingfolio/internal/config"
	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/repositories"
	"weddingfolio/internal/domain/services"
)

// EnsurePath resolves an ordered list of folder names into the ID of the leaf
// folder, creating any missing folder under ownerID along the way.
//
// Blank segments are skipped. Each segment costs one lookup and at most one
// insert; there is no surrounding transaction. When a concurrent caller wins
// the race to create a sibling, the store reports a conflict and the winner's
// row is adopted instead.
//
// Errors: domain.ErrUnauthenticated without an owner, domain.ErrEmptyPath when
// nothing is left after filtering, *domain.FolderCreationError for any other
// failure (including exhausted conflict retries).
func EnsurePath(ctx context.Context, store repositories.FolderStore, ownerID string, segments []string) (string, error) {
	if ownerID == "" {
		return "", domain.ErrUnauthenticated
	}

	names := CleanSegments(segments)
	if len(names) == 0 {
		return "", domain.ErrEmptyPath
	}
	if len(names) > config.MaxPathSegments {
		return "", fmt.Errorf("%w: path has %d segments, maximum is %d",
			domain.ErrValidation, len(names), config.MaxPathSegments)
	}

	var parentID *string
	for _, name := range names {
		if len(name) > config.MaxFolderNameLength {
			return "", &domain.FolderCreationError{
				Segment: name,
				Err: fmt.Errorf("%w: name exceeds maximum length of %d",
					domain.ErrValidation, config.MaxFolderNameLength),
			}
		}

		id, err := ensureSegment(ctx, store, ownerID, parentID, name)
		if err != nil {
			return "", err
		}
		parentID = &id
	}

	return *parentID, nil
}

// ensureSegment finds or creates one folder under parentID.
func ensureSegment(ctx context.Context, store repositories.FolderStore, ownerID string, parentID *string, name string) (string, error) {
	existing, err := store.FindByName(ctx, ownerID, parentID, name)
	if err != nil {
		return "", &domain.FolderCreationError{Segment: name, Err: err}
	}
	if existing != nil {
		return existing.ID, nil
	}

	for attempt := 0; attempt < config.MaxConflictRetries; attempt++ {
		folder := &models.Folder{
			OwnerID:  ownerID,
			ParentID: parentID,
			Name:     name,
		}
		err := store.Create(ctx, folder)
		if err == nil {
			return folder.ID, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return "", &domain.FolderCreationError{Segment: name, Err: err}
		}

		// Someone else created it first; adopt theirs
		winner, err := store.FindByName(ctx, ownerID, parentID, name)
		if err != nil {
			return "", &domain.FolderCreationError{Segment: name, Err: err}
		}
		if winner != nil {
			return winner.ID, nil
		}
	}

	return "", &domain.FolderCreationError{Segment: name, Err: domain.ErrConflictRetriesExhausted}
}

// CleanSegments trims every segment and drops the blank ones.
func CleanSegments(segments []string) []string {
	names := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	return names
}

// pathResolver binds EnsurePath to a store for services that take a PathResolver.
type pathResolver struct {
	store  repositories.FolderStore
	logger *slog.Logger
}

// NewPathResolver creates a path resolver backed by store
func NewPathResolver(store repositories.FolderStore, logger *slog.Logger) services.PathResolver {
	return &pathResolver{
		store:  store,
		logger: logger,
	}
}

// EnsurePath implements services.PathResolver
func (r *pathResolver) EnsurePath(ctx context.Context, ownerID string, segments []string) (string, error) {
	id, err := EnsurePath(ctx, r.store, ownerID, segments)
	if err != nil {
		var fcErr *domain.FolderCreationError
		if errors.As(err, &fcErr) {
			r.logger.Error("folder path resolution failed",
				"owner_id", ownerID,
				"segment", fcErr.Segment,
				"error", fcErr.Err,
			)
		}
		return "", err
	}

	r.logger.Debug("folder path resolved",
		"owner_id", ownerID,
		"segments", len(segments),
		"folder_id", id,
	)
	return id, nil
}
