package services

import (
	"context"
	"io"

	"weddingfolio/internal/domain/models"
)

// AddMediaRequest describes an uploaded image
type AddMediaRequest struct {
	UserID      string
	WeddingID   string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ReclassifySummary reports the outcome of a batch reclassification
type ReclassifySummary struct {
	Total      int               `json:"total"`
	Classified int               `json:"classified"`
	Failed     int               `json:"failed"`
	Errors     map[string]string `json:"errors,omitempty"` // media ID -> message
}

// PublicationChannel is where a photo may be published
type PublicationChannel string

const (
	ChannelPortfolio PublicationChannel = "portfolio"
	ChannelSocial    PublicationChannel = "social"
)

// IsValid reports whether c is a known channel
func (c PublicationChannel) IsValid() bool {
	return c == ChannelPortfolio || c == ChannelSocial
}

// PublicationDecision is the outcome of a publication-rights check
type PublicationDecision struct {
	MediaID string             `json:"media_id"`
	Channel PublicationChannel `json:"channel"`
	Allowed bool               `json:"allowed"`
	Reasons []string           `json:"reasons"`
}

// MediaService defines business logic operations for media items
type MediaService interface {
	// AddMedia stores the upload, records it and classifies it.
	// Classification failure is recorded on the item and never fails the upload.
	AddMedia(ctx context.Context, req *AddMediaRequest) (*models.Media, error)

	// GetMedia retrieves a media item with a fresh signed URL
	GetMedia(ctx context.Context, userID, id string) (*models.Media, error)

	// ListMedia lists a wedding's media with signed URLs
	ListMedia(ctx context.Context, userID, weddingID string) ([]models.Media, error)

	// ReclassifyMedia runs the classifier again for one item
	ReclassifyMedia(ctx context.Context, userID, id string) (*models.Media, error)

	// ReclassifyWedding runs the classifier for every item of a wedding
	ReclassifyWedding(ctx context.Context, userID, weddingID string) (*ReclassifySummary, error)

	// CheckPublication decides whether a photo may be published on a channel
	CheckPublication(ctx context.Context, userID, id string, channel PublicationChannel) (*PublicationDecision, error)

	// DeleteMedia deletes the record and its stored object
	DeleteMedia(ctx context.Context, userID, id string) error
}

// MediaContext is optional wedding context rendered into the classifier instructions
type MediaContext struct {
	CoupleName         string   `json:"couple_name,omitempty"`
	WeddingDate        string   `json:"wedding_date,omitempty"`
	Venue              string   `json:"venue,omitempty"`
	DestinationCity    string   `json:"destination_city,omitempty"`
	DestinationCountry string   `json:"destination_country,omitempty"`
	WeddingType        string   `json:"wedding_type,omitempty"`
	Vendors            []string `json:"vendors,omitempty"`
}

// ClassificationRequest is one classifier call
type ClassificationRequest struct {
	ImageURL string
	Context  *MediaContext
}

// Analysis is the tagged classifier outcome. Data is set only on success.
type Analysis struct {
	Success bool                   `json:"success"`
	Data    *models.Classification `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// MediaClassifier extracts structured metadata from an image
type MediaClassifier interface {
	Analyze(ctx context.Context, req ClassificationRequest) Analysis
}
