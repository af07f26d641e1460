package models

import (
	"time"
)

// Wedding is a hand-entered business record that owns a folder and media.
type Wedding struct {
	ID               string     `json:"id" db:"id"`
	OwnerID          string     `json:"owner_id" db:"owner_id"`
	CoupleName       string     `json:"couple_name" db:"couple_name"`
	WeddingDate      *time.Time `json:"wedding_date,omitempty" db:"wedding_date"`
	Venue            string     `json:"venue" db:"venue"`
	City             string     `json:"city" db:"city"`
	Country          string     `json:"country" db:"country"`
	WeddingType      string     `json:"wedding_type" db:"wedding_type"`
	Vendors          []string   `json:"vendors" db:"vendors"`
	PortfolioConsent bool       `json:"portfolio_consent" db:"portfolio_consent"`
	SocialConsent    bool       `json:"social_consent" db:"social_consent"`
	MinorsConsent    bool       `json:"minors_consent" db:"minors_consent"`
	Notes            *string    `json:"notes,omitempty" db:"notes"`
	FolderID         string     `json:"folder_id" db:"folder_id"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// WeddingsRoot is the top-level folder every wedding is filed under.
const WeddingsRoot = "Weddings"

// FolderSegments returns the folder path a wedding is stored under.
// Blank location fields are skipped by the path resolver.
func (w *Wedding) FolderSegments() []string {
	return []string{WeddingsRoot, w.Country, w.City, w.Venue, w.CoupleName}
}

// DateString formats the wedding date as YYYY-MM-DD, or "" when unset.
func (w *Wedding) DateString() string {
	if w.WeddingDate == nil {
		return ""
	}
	return w.WeddingDate.Format("2006-01-02")
}
