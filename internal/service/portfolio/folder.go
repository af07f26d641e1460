package portfolio

import (
	"context"
	"fmt"
	"log/slog"

	"weddingfolio/internal/config"
	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/repositories"
	"weddingfolio/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	resolver   services.PathResolver
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	resolver services.PathResolver,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		resolver:   resolver,
		logger:     logger,
	}
}

// EnsureFolderPath materializes the requested path and returns the leaf folder
func (s *folderService) EnsureFolderPath(ctx context.Context, userID string, req *services.EnsurePathRequest) (*services.EnsurePathResponse, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Segments, validation.Each(validation.Length(0, config.MaxFolderNameLength))),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folderID, err := s.resolver.EnsurePath(ctx, userID, req.Segments)
	if err != nil {
		return nil, err
	}

	folder, err := s.GetFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	return &services.EnsurePathResponse{
		FolderID: folderID,
		Folder:   folder,
	}, nil
}

// GetFolder retrieves a folder with its computed path
func (s *folderService) GetFolder(ctx context.Context, userID, id string) (*models.Folder, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	folder, err := s.folderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.folderRepo.GetPath(ctx, folder.ID, userID)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		folder.Path = folder.Name
	} else {
		folder.Path = path
	}

	return folder, nil
}

// ListChildren lists child folders (nil parent = root level)
func (s *folderService) ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Folder, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	// Unknown parents are a 404, not an empty listing
	if parentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *parentID, userID); err != nil {
			return nil, err
		}
	}

	children, err := s.folderRepo.ListChildren(ctx, parentID, userID)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []models.Folder{}
	}
	return children, nil
}

// GetTree builds the nested folder hierarchy from the owner's flat folder list
func (s *folderService) GetTree(ctx context.Context, userID string) ([]*models.FolderTreeNode, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	allFolders, err := s.folderRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	tree := BuildFolderTree(allFolders)

	s.logger.Debug("folder tree built",
		"user_id", userID,
		"folder_count", len(allFolders),
	)

	return tree, nil
}

// BuildFolderTree nests a flat folder list. Siblings keep the input order.
// Folders whose parent is missing from the list are dropped.
func BuildFolderTree(folders []models.Folder) []*models.FolderTreeNode {
	nodes := make(map[string]*models.FolderTreeNode, len(folders))

	// First pass: create all nodes
	for _, f := range folders {
		nodes[f.ID] = &models.FolderTreeNode{
			ID:        f.ID,
			Name:      f.Name,
			ParentID:  f.ParentID,
			CreatedAt: f.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
		}
	}

	// Second pass: attach children to parents
	roots := make([]*models.FolderTreeNode, 0)
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*f.ParentID]; ok {
			parent.Folders = append(parent.Folders, node)
		}
	}

	return roots
}
