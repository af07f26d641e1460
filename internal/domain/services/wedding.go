package services

import (
	"context"

	"weddingfolio/internal/domain/models"
)

// CreateWeddingRequest represents a request to create a wedding
type CreateWeddingRequest struct {
	UserID           string   `json:"-"`
	CoupleName       string   `json:"couple_name"`
	WeddingDate      string   `json:"wedding_date,omitempty"` // YYYY-MM-DD
	Venue            string   `json:"venue,omitempty"`
	City             string   `json:"city,omitempty"`
	Country          string   `json:"country,omitempty"`
	WeddingType      string   `json:"wedding_type,omitempty"`
	Vendors          []string `json:"vendors,omitempty"`
	PortfolioConsent bool     `json:"portfolio_consent"`
	SocialConsent    bool     `json:"social_consent"`
	MinorsConsent    bool     `json:"minors_consent"`
	Notes            *string  `json:"notes,omitempty"`
}

// UpdateWeddingRequest represents a partial wedding update.
// Nil pointers leave the field unchanged.
// This is transport-agnostic for notes - handler maps from httputil.OptionalString.
type UpdateWeddingRequest struct {
	CoupleName       *string   `json:"couple_name,omitempty"`
	WeddingDate      *string   `json:"wedding_date,omitempty"` // "" clears the date
	Venue            *string   `json:"venue,omitempty"`
	City             *string   `json:"city,omitempty"`
	Country          *string   `json:"country,omitempty"`
	WeddingType      *string   `json:"wedding_type,omitempty"`
	Vendors          *[]string `json:"vendors,omitempty"`
	PortfolioConsent *bool     `json:"portfolio_consent,omitempty"`
	SocialConsent    *bool     `json:"social_consent,omitempty"`
	MinorsConsent    *bool     `json:"minors_consent,omitempty"`
	SetNotes         bool      `json:"-"` // true when notes was present (null clears)
	Notes            *string   `json:"-"`
}

// WeddingService defines business logic operations for weddings
type WeddingService interface {
	// CreateWedding validates the record, files it under its folder path and persists it
	CreateWedding(ctx context.Context, req *CreateWeddingRequest) (*models.Wedding, error)

	// GetWedding retrieves a wedding by ID
	GetWedding(ctx context.Context, userID, id string) (*models.Wedding, error)

	// ListWeddings retrieves all weddings for a user
	ListWeddings(ctx context.Context, userID string) ([]models.Wedding, error)

	// UpdateWedding applies a partial update, re-filing the wedding when its location changes
	UpdateWedding(ctx context.Context, userID, id string, req *UpdateWeddingRequest) (*models.Wedding, error)

	// DeleteWedding deletes a wedding together with its media
	DeleteWedding(ctx context.Context, userID, id string) error
}
