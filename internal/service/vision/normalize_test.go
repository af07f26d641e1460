package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weddingfolio/internal/domain/models"
)

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    RawClassification
	}{
		{
			name:    "empty object",
			payload: map[string]any{},
			want: RawClassification{
				Description: DefaultDescription,
				Tags:        []string{},
				Moment:      "Other",
				RiskFlags:   []string{},
			},
		},
		{
			name: "wrong types everywhere",
			payload: map[string]any{
				"description": 42.0,
				"tags":        "flowers, arch",
				"moment":      []any{"Ceremony"},
				"risk_flags":  map[string]any{"Shows face": true},
			},
			want: RawClassification{
				Description: DefaultDescription,
				Tags:        []string{},
				Moment:      "Other",
				RiskFlags:   []string{},
			},
		},
		{
			name: "blank description and mixed tag entries",
			payload: map[string]any{
				"description": "   ",
				"tags":        []any{"arch", 3.0, " ", " roses ", nil},
				"moment":      "Decor",
				"risk_flags":  []any{"Shows guests", true},
			},
			want: RawClassification{
				Description: DefaultDescription,
				Tags:        []string{"arch", "roses"},
				Moment:      "Decor",
				RiskFlags:   []string{"Shows guests"},
			},
		},
		{
			name: "well formed passes through",
			payload: map[string]any{
				"description": "Couple exchanging vows under a vine arch.",
				"tags":        []any{"vows", "vineyard"},
				"moment":      "Ceremony",
				"risk_flags":  []any{"Shows face"},
			},
			want: RawClassification{
				Description: "Couple exchanging vows under a vine arch.",
				Tags:        []string{"vows", "vineyard"},
				Moment:      "Ceremony",
				RiskFlags:   []string{"Shows face"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.payload))
		})
	}
}

func TestValidate_UnknownMomentFallsBackToOther(t *testing.T) {
	for _, moment := range []string{"", "Reception", "ceremony", "Cerimônia", " Party"} {
		got := Validate(RawClassification{Description: "x", Tags: []string{}, Moment: moment})
		assert.Equal(t, models.MomentOther, got.Moment, "moment %q", moment)
	}
}

func TestValidate_KnownMomentsKept(t *testing.T) {
	for _, m := range models.Moments {
		got := Validate(RawClassification{Description: "x", Moment: string(m)})
		assert.Equal(t, m, got.Moment)
	}
}

func TestValidate_RiskFlagsFilteredInOrder(t *testing.T) {
	got := Validate(RawClassification{
		Description: "x",
		Moment:      "Party",
		RiskFlags:   []string{"Shows guests", "Blurry", "Shows minor", "shows face", "Shows guests", "Sensitive content"},
	})

	assert.Equal(t, []models.RiskFlag{
		models.RiskShowsGuests,
		models.RiskShowsMinor,
		models.RiskSensitiveContent,
	}, got.RiskFlags)
}

func TestValidate_NeverReturnsNilSlices(t *testing.T) {
	got := Validate(RawClassification{})

	assert.Equal(t, DefaultDescription, got.Description)
	assert.NotNil(t, got.Tags)
	assert.NotNil(t, got.RiskFlags)
	assert.Equal(t, models.MomentOther, got.Moment)
}
