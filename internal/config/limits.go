package config

const (
	// MaxFolderNameLength is the maximum length for a single folder segment.
	// Fits PostgreSQL VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxPathSegments caps how deep one ensure-path call may go.
	MaxPathSegments = 32

	// MaxCoupleNameLength is the maximum length for a couple's display name.
	MaxCoupleNameLength = 255

	// MaxVendors is the maximum number of vendor names on one wedding.
	MaxVendors = 50

	// MaxMediaUploadBytes is the largest accepted image upload (25MB).
	MaxMediaUploadBytes = 25 << 20

	// MaxConflictRetries bounds how often the path resolver retries a create
	// after a uniqueness conflict whose winner it could not read back.
	MaxConflictRetries = 3
)
