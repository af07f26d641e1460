package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"weddingfolio/internal/config"
	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/repositories"
	"weddingfolio/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BatchOptions bounds batch reclassification
type BatchOptions struct {
	Concurrency int     // parallel classifier calls
	RatePerSec  float64 // classifier calls per second; <= 0 means unlimited
}

// mediaService implements the MediaService interface
type mediaService struct {
	mediaRepo   repositories.MediaRepository
	weddingRepo repositories.WeddingRepository
	blobs       repositories.BlobStore
	classifier  services.MediaClassifier
	authorizer  services.ResourceAuthorizer
	concurrency int
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(
	mediaRepo repositories.MediaRepository,
	weddingRepo repositories.WeddingRepository,
	blobs repositories.BlobStore,
	classifier services.MediaClassifier,
	authorizer services.ResourceAuthorizer,
	opts BatchOptions,
	logger *slog.Logger,
) services.MediaService {
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &mediaService{
		mediaRepo:   mediaRepo,
		weddingRepo: weddingRepo,
		blobs:       blobs,
		classifier:  classifier,
		authorizer:  authorizer,
		concurrency: concurrency,
		limiter:     rate.NewLimiter(limit, concurrency),
		logger:      logger,
	}
}

// AddMedia stores the upload, records it and classifies it
func (s *mediaService) AddMedia(ctx context.Context, req *services.AddMediaRequest) (*models.Media, error) {
	if err := s.authorizer.CanAccessWedding(ctx, req.UserID, req.WeddingID); err != nil {
		return nil, err
	}
	if err := validateAddRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	wedding, err := s.weddingRepo.GetByIDOnly(ctx, req.WeddingID)
	if err != nil {
		return nil, err
	}

	key := objectKey(req.UserID, req.WeddingID, req.Filename)
	if err := s.blobs.Put(ctx, key, req.Body, req.Size, req.ContentType); err != nil {
		return nil, fmt.Errorf("store media object: %w", err)
	}

	now := time.Now()
	folderID := wedding.FolderID
	media := &models.Media{
		OwnerID:     req.UserID,
		WeddingID:   wedding.ID,
		FolderID:    &folderID,
		ObjectKey:   key,
		Filename:    path.Base(strings.TrimSpace(req.Filename)),
		ContentType: req.ContentType,
		SizeBytes:   req.Size,
		Tags:        []string{},
		Moment:      models.MomentOther,
		RiskFlags:   []models.RiskFlag{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		if rmErr := s.blobs.Remove(ctx, key); rmErr != nil {
			s.logger.Warn("failed to remove orphaned media object", "object_key", key, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info("media stored",
		"id", media.ID,
		"wedding_id", wedding.ID,
		"object_key", key,
		"size_bytes", media.SizeBytes,
	)

	if err := s.classify(ctx, media, wedding); err != nil {
		return nil, err
	}

	return media, nil
}

// GetMedia retrieves a media item with a fresh signed URL
func (s *mediaService) GetMedia(ctx context.Context, userID, id string) (*models.Media, error) {
	if err := s.authorizer.CanAccessMedia(ctx, userID, id); err != nil {
		return nil, err
	}

	media, err := s.mediaRepo.GetByIDOnly(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sign(ctx, media)
	return media, nil
}

// ListMedia lists a wedding's media with signed URLs
func (s *mediaService) ListMedia(ctx context.Context, userID, weddingID string) ([]models.Media, error) {
	if err := s.authorizer.CanAccessWedding(ctx, userID, weddingID); err != nil {
		return nil, err
	}

	items, err := s.mediaRepo.ListByWedding(ctx, weddingID, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Media{}
	}

	for i := range items {
		s.sign(ctx, &items[i])
	}
	return items, nil
}

// ReclassifyMedia runs the classifier again for one item
func (s *mediaService) ReclassifyMedia(ctx context.Context, userID, id string) (*models.Media, error) {
	if err := s.authorizer.CanAccessMedia(ctx, userID, id); err != nil {
		return nil, err
	}

	media, err := s.mediaRepo.GetByIDOnly(ctx, id)
	if err != nil {
		return nil, err
	}
	wedding, err := s.weddingRepo.GetByIDOnly(ctx, media.WeddingID)
	if err != nil {
		return nil, err
	}

	if err := s.classify(ctx, media, wedding); err != nil {
		return nil, err
	}
	return media, nil
}

// ReclassifyWedding runs the classifier for every item of a wedding.
// Calls run in parallel up to the configured concurrency and share one rate
// limiter. Per-item failures are reported in the summary.
func (s *mediaService) ReclassifyWedding(ctx context.Context, userID, weddingID string) (*services.ReclassifySummary, error) {
	if err := s.authorizer.CanAccessWedding(ctx, userID, weddingID); err != nil {
		return nil, err
	}

	wedding, err := s.weddingRepo.GetByIDOnly(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	items, err := s.mediaRepo.ListByWedding(ctx, weddingID, userID)
	if err != nil {
		return nil, err
	}

	summary := &services.ReclassifySummary{
		Total:  len(items),
		Errors: map[string]string{},
	}
	var mu sync.Mutex
	record := func(id, failure string) {
		mu.Lock()
		defer mu.Unlock()
		if failure == "" {
			summary.Classified++
			return
		}
		summary.Failed++
		summary.Errors[id] = failure
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range items {
		media := &items[i]
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			if err := s.classify(gctx, media, wedding); err != nil {
				record(media.ID, err.Error())
				return nil
			}
			if media.ClassificationError != nil {
				record(media.ID, *media.ClassificationError)
				return nil
			}
			record(media.ID, "")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reclassify wedding %s: %w", weddingID, err)
	}

	s.logger.Info("wedding reclassified",
		"wedding_id", weddingID,
		"total", summary.Total,
		"classified", summary.Classified,
		"failed", summary.Failed,
	)

	return summary, nil
}

// CheckPublication decides whether a photo may be published on a channel
func (s *mediaService) CheckPublication(ctx context.Context, userID, id string, channel services.PublicationChannel) (*services.PublicationDecision, error) {
	if !channel.IsValid() {
		return nil, fmt.Errorf("%w: unknown channel %q (use %q or %q)",
			domain.ErrValidation, channel, services.ChannelPortfolio, services.ChannelSocial)
	}
	if err := s.authorizer.CanAccessMedia(ctx, userID, id); err != nil {
		return nil, err
	}

	media, err := s.mediaRepo.GetByIDOnly(ctx, id)
	if err != nil {
		return nil, err
	}
	wedding, err := s.weddingRepo.GetByIDOnly(ctx, media.WeddingID)
	if err != nil {
		return nil, err
	}

	return EvaluatePublication(media, wedding, channel), nil
}

// DeleteMedia deletes the record and its stored object
func (s *mediaService) DeleteMedia(ctx context.Context, userID, id string) error {
	if err := s.authorizer.CanAccessMedia(ctx, userID, id); err != nil {
		return err
	}

	media, err := s.mediaRepo.GetByIDOnly(ctx, id)
	if err != nil {
		return err
	}
	if err := s.mediaRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, media.ObjectKey); err != nil {
		s.logger.Warn("failed to remove media object",
			"media_id", id,
			"object_key", media.ObjectKey,
			"error", err,
		)
	}

	s.logger.Info("media deleted", "id", id, "user_id", userID)
	return nil
}

// classify presigns the object, runs the classifier and persists the outcome.
// A classifier failure is stored on the record and is not an error; only
// persistence failures are returned.
func (s *mediaService) classify(ctx context.Context, media *models.Media, wedding *models.Wedding) error {
	url, err := s.blobs.PresignGet(ctx, media.ObjectKey)

	var analysis services.Analysis
	if err != nil {
		analysis = services.Analysis{Error: fmt.Sprintf("sign media URL: %v", err)}
	} else {
		analysis = s.classifier.Analyze(ctx, services.ClassificationRequest{
			ImageURL: url,
			Context:  MediaContextFor(wedding),
		})
	}

	now := time.Now()
	if analysis.Success && analysis.Data != nil {
		media.ApplyClassification(analysis.Data, now)
	} else {
		msg := analysis.Error
		if msg == "" {
			msg = "classification failed"
		}
		media.ClassificationError = &msg
	}
	media.UpdatedAt = now

	if err := s.mediaRepo.UpdateClassification(ctx, media); err != nil {
		return fmt.Errorf("store classification: %w", err)
	}
	media.SignedURL = url

	if media.ClassificationError != nil {
		s.logger.Warn("media left unclassified",
			"id", media.ID,
			"reason", *media.ClassificationError,
		)
	}
	return nil
}

// sign fills in SignedURL. Failure leaves it empty.
func (s *mediaService) sign(ctx context.Context, media *models.Media) {
	url, err := s.blobs.PresignGet(ctx, media.ObjectKey)
	if err != nil {
		s.logger.Warn("failed to sign media URL", "id", media.ID, "error", err)
		return
	}
	media.SignedURL = url
}

// MediaContextFor renders a wedding as classifier context
func MediaContextFor(w *models.Wedding) *services.MediaContext {
	return &services.MediaContext{
		CoupleName:         w.CoupleName,
		WeddingDate:        w.DateString(),
		Venue:              w.Venue,
		DestinationCity:    w.City,
		DestinationCountry: w.Country,
		WeddingType:        w.WeddingType,
		Vendors:            w.Vendors,
	}
}

// objectKey builds <owner>/<wedding>/<uuid><ext>
func objectKey(ownerID, weddingID, filename string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	return fmt.Sprintf("%s/%s/%s%s", ownerID, weddingID, uuid.NewString(), ext)
}

func validateAddRequest(req *services.AddMediaRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Filename, validation.Required, validation.Length(1, config.MaxFolderNameLength)),
		validation.Field(&req.ContentType, validation.Required, validation.By(isImageType)),
		validation.Field(&req.Size, validation.Required, validation.Min(int64(1)), validation.Max(int64(config.MaxMediaUploadBytes))),
		validation.Field(&req.Body, validation.NotNil),
	)
}

func isImageType(value interface{}) error {
	s, _ := value.(string)
	if !strings.HasPrefix(strings.ToLower(s), "image/") {
		return fmt.Errorf("must be an image type")
	}
	return nil
}
