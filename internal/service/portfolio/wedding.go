package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"weddingfolio/internal/config"
	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/repositories"
	"weddingfolio/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const dateLayout = "2006-01-02"

// weddingService implements the WeddingService interface
type weddingService struct {
	weddingRepo repositories.WeddingRepository
	mediaRepo   repositories.MediaRepository
	blobs       repositories.BlobStore
	resolver    services.PathResolver
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewWeddingService creates a new wedding service
func NewWeddingService(
	weddingRepo repositories.WeddingRepository,
	mediaRepo repositories.MediaRepository,
	blobs repositories.BlobStore,
	resolver services.PathResolver,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.WeddingService {
	return &weddingService{
		weddingRepo: weddingRepo,
		mediaRepo:   mediaRepo,
		blobs:       blobs,
		resolver:    resolver,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateWedding validates the record, files it under its folder path and persists it
func (s *weddingService) CreateWedding(ctx context.Context, req *services.CreateWeddingRequest) (*models.Wedding, error) {
	if req.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	date, err := parseDate(req.WeddingDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	wedding := &models.Wedding{
		OwnerID:          req.UserID,
		CoupleName:       strings.TrimSpace(req.CoupleName),
		WeddingDate:      date,
		Venue:            strings.TrimSpace(req.Venue),
		City:             strings.TrimSpace(req.City),
		Country:          strings.TrimSpace(req.Country),
		WeddingType:      strings.TrimSpace(req.WeddingType),
		Vendors:          cleanVendors(req.Vendors),
		PortfolioConsent: req.PortfolioConsent,
		SocialConsent:    req.SocialConsent,
		MinorsConsent:    req.MinorsConsent,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	folderID, err := s.resolver.EnsurePath(ctx, req.UserID, wedding.FolderSegments())
	if err != nil {
		return nil, err
	}
	wedding.FolderID = folderID

	if err := s.weddingRepo.Create(ctx, wedding); err != nil {
		return nil, err
	}

	s.logger.Info("wedding created",
		"id", wedding.ID,
		"couple_name", wedding.CoupleName,
		"folder_id", wedding.FolderID,
		"user_id", req.UserID,
	)

	return wedding, nil
}

// GetWedding retrieves a wedding by ID
func (s *weddingService) GetWedding(ctx context.Context, userID, id string) (*models.Wedding, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.weddingRepo.GetByID(ctx, id, userID)
}

// ListWeddings retrieves all weddings for a user
func (s *weddingService) ListWeddings(ctx context.Context, userID string) ([]models.Wedding, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	weddings, err := s.weddingRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if weddings == nil {
		weddings = []models.Wedding{}
	}
	return weddings, nil
}

// UpdateWedding applies a partial update. When the couple name or any location
// field changes, the wedding and its media are re-filed under the new path.
// The old folders are left in place.
func (s *weddingService) UpdateWedding(ctx context.Context, userID, id string, req *services.UpdateWeddingRequest) (*models.Wedding, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	wedding, err := s.weddingRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	oldSegments := wedding.FolderSegments()

	if req.CoupleName != nil {
		wedding.CoupleName = strings.TrimSpace(*req.CoupleName)
	}
	if req.WeddingDate != nil {
		date, err := parseDate(*req.WeddingDate)
		if err != nil {
			return nil, err
		}
		wedding.WeddingDate = date
	}
	if req.Venue != nil {
		wedding.Venue = strings.TrimSpace(*req.Venue)
	}
	if req.City != nil {
		wedding.City = strings.TrimSpace(*req.City)
	}
	if req.Country != nil {
		wedding.Country = strings.TrimSpace(*req.Country)
	}
	if req.WeddingType != nil {
		wedding.WeddingType = strings.TrimSpace(*req.WeddingType)
	}
	if req.Vendors != nil {
		wedding.Vendors = cleanVendors(*req.Vendors)
	}
	if req.PortfolioConsent != nil {
		wedding.PortfolioConsent = *req.PortfolioConsent
	}
	if req.SocialConsent != nil {
		wedding.SocialConsent = *req.SocialConsent
	}
	if req.MinorsConsent != nil {
		wedding.MinorsConsent = *req.MinorsConsent
	}
	if req.SetNotes {
		wedding.Notes = req.Notes
	}
	wedding.UpdatedAt = time.Now()

	moved := !slices.Equal(CleanSegments(oldSegments), CleanSegments(wedding.FolderSegments()))
	if moved {
		folderID, err := s.resolver.EnsurePath(ctx, userID, wedding.FolderSegments())
		if err != nil {
			return nil, err
		}
		wedding.FolderID = folderID
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.weddingRepo.Update(txCtx, wedding); err != nil {
			return err
		}
		if moved {
			return s.mediaRepo.MoveToFolder(txCtx, wedding.ID, userID, wedding.FolderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("wedding updated",
		"id", wedding.ID,
		"user_id", userID,
		"moved", moved,
		"folder_id", wedding.FolderID,
	)

	return wedding, nil
}

// DeleteWedding removes the wedding and its media rows in one transaction,
// then removes the stored objects. Object removal failures are logged only.
func (s *weddingService) DeleteWedding(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}

	// Verify wedding exists first (provides better error message)
	if _, err := s.weddingRepo.GetByID(ctx, id, userID); err != nil {
		return err
	}

	var objectKeys []string
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		keys, err := s.mediaRepo.DeleteByWedding(txCtx, id, userID)
		if err != nil {
			return err
		}
		objectKeys = keys
		return s.weddingRepo.Delete(txCtx, id, userID)
	})
	if err != nil {
		return err
	}

	for _, key := range objectKeys {
		if err := s.blobs.Remove(ctx, key); err != nil {
			s.logger.Warn("failed to remove media object",
				"wedding_id", id,
				"object_key", key,
				"error", err,
			)
		}
	}

	s.logger.Info("wedding deleted",
		"id", id,
		"user_id", userID,
		"media_count", len(objectKeys),
	)

	return nil
}

// validateCreateRequest validates a create wedding request
func (s *weddingService) validateCreateRequest(req *services.CreateWeddingRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CoupleName,
			validation.Required,
			validation.Length(1, config.MaxCoupleNameLength),
			validation.By(notBlank),
		),
		validation.Field(&req.WeddingDate, validation.Date(dateLayout)),
		validation.Field(&req.Venue, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.City, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Country, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.WeddingType, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Vendors, validation.Length(0, config.MaxVendors)),
	)
}

// validateUpdateRequest validates an update wedding request
func (s *weddingService) validateUpdateRequest(req *services.UpdateWeddingRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CoupleName,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxCoupleNameLength),
			validation.By(notBlank),
		),
		validation.Field(&req.WeddingDate, validation.Date(dateLayout)),
		validation.Field(&req.Venue, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.City, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Country, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.WeddingType, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Vendors, validation.Length(0, config.MaxVendors)),
	)
}

// notBlank rejects strings that are empty after trimming. Nil pointers pass.
func notBlank(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

// parseDate parses YYYY-MM-DD; "" means no date.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: wedding_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return &t, nil
}

// cleanVendors trims vendor names and drops blanks. Never returns nil.
func cleanVendors(vendors []string) []string {
	out := make([]string, 0, len(vendors))
	for _, v := range vendors {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
