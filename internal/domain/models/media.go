package models

import (
	"time"
)

// Moment is the scene a photo belongs to. The set is closed.
type Moment string

const (
	MomentCeremony     Moment = "Ceremony"
	MomentParty        Moment = "Party"
	MomentGettingReady Moment = "Getting-ready"
	MomentDecor        Moment = "Decor"
	MomentPortraits    Moment = "Portraits"
	MomentOther        Moment = "Other" // catch-all
)

// Moments lists every valid moment in display order.
var Moments = []Moment{
	MomentCeremony,
	MomentParty,
	MomentGettingReady,
	MomentDecor,
	MomentPortraits,
	MomentOther,
}

// IsValid reports whether m is one of the enumerated moments.
func (m Moment) IsValid() bool {
	for _, v := range Moments {
		if m == v {
			return true
		}
	}
	return false
}

// RiskFlag marks a privacy or usage-rights concern detected in a photo.
type RiskFlag string

const (
	RiskShowsFace        RiskFlag = "Shows face"
	RiskShowsMinor       RiskFlag = "Shows minor"
	RiskShowsGuests      RiskFlag = "Shows guests"
	RiskSensitiveContent RiskFlag = "Sensitive content"
)

// RiskFlags lists every valid risk flag.
var RiskFlags = []RiskFlag{
	RiskShowsFace,
	RiskShowsMinor,
	RiskShowsGuests,
	RiskSensitiveContent,
}

// IsValid reports whether f is one of the enumerated risk flags.
func (f RiskFlag) IsValid() bool {
	for _, v := range RiskFlags {
		if f == v {
			return true
		}
	}
	return false
}

// HasRiskFlag reports whether flags contains f.
func HasRiskFlag(flags []RiskFlag, f RiskFlag) bool {
	for _, v := range flags {
		if v == f {
			return true
		}
	}
	return false
}

// Classification is the validated metadata extracted from one image.
// Moment is always a valid Moment and RiskFlags only holds valid flags.
type Classification struct {
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Moment      Moment     `json:"moment"`
	RiskFlags   []RiskFlag `json:"risk_flags"`
}

// Media is an uploaded image attached to a wedding.
type Media struct {
	ID                  string     `json:"id" db:"id"`
	OwnerID             string     `json:"owner_id" db:"owner_id"`
	WeddingID           string     `json:"wedding_id" db:"wedding_id"`
	FolderID            *string    `json:"folder_id" db:"folder_id"`
	ObjectKey           string     `json:"object_key" db:"object_key"`
	Filename            string     `json:"filename" db:"filename"`
	ContentType         string     `json:"content_type" db:"content_type"`
	SizeBytes           int64      `json:"size_bytes" db:"size_bytes"`
	Description         string     `json:"description" db:"description"`
	Tags                []string   `json:"tags" db:"tags"`
	Moment              Moment     `json:"moment" db:"moment"`
	RiskFlags           []RiskFlag `json:"risk_flags" db:"risk_flags"`
	ClassifiedAt        *time.Time `json:"classified_at,omitempty" db:"classified_at"`
	ClassificationError *string    `json:"classification_error,omitempty" db:"classification_error"`
	SignedURL           string     `json:"signed_url,omitempty"` // Computed on read, not stored
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// IsClassified reports whether a classification result has been stored.
func (m *Media) IsClassified() bool {
	return m.ClassifiedAt != nil
}

// ApplyClassification copies a validated classification onto the record.
func (m *Media) ApplyClassification(c *Classification, at time.Time) {
	m.Description = c.Description
	m.Tags = c.Tags
	m.Moment = c.Moment
	m.RiskFlags = c.RiskFlags
	m.ClassifiedAt = &at
	m.ClassificationError = nil
}
