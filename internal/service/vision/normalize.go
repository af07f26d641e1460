package vision

import (
	"strings"

	"weddingfolio/internal/domain/models"
)

// DefaultDescription replaces a missing or blank description.
const DefaultDescription = "No description available."

// RawClassification is the model output after shape normalization: every
// field is present and of the right Go type, but enum values are unchecked.
type RawClassification struct {
	Description string
	Tags        []string
	Moment      string
	RiskFlags   []string
}

// Normalize coerces decoded model output into RawClassification, substituting
// a default for every field that is absent or of the wrong shape.
func Normalize(payload map[string]any) RawClassification {
	raw := RawClassification{
		Description: DefaultDescription,
		Tags:        []string{},
		Moment:      string(models.MomentOther),
		RiskFlags:   []string{},
	}

	if s, ok := payload["description"].(string); ok && strings.TrimSpace(s) != "" {
		raw.Description = strings.TrimSpace(s)
	}
	if s, ok := payload["moment"].(string); ok {
		raw.Moment = s
	}
	raw.Tags = stringList(payload["tags"])
	raw.RiskFlags = stringList(payload["risk_flags"])

	return raw
}

// stringList keeps the non-blank string entries of a JSON array. Anything
// that is not an array yields an empty list.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks a normalized result against the closed enums. An unknown
// moment collapses to models.MomentOther; unknown or repeated risk flags are
// dropped, keeping the order of the rest. It never fails.
func Validate(raw RawClassification) models.Classification {
	result := models.Classification{
		Description: raw.Description,
		Tags:        raw.Tags,
		Moment:      models.MomentOther,
		RiskFlags:   []models.RiskFlag{},
	}
	if result.Description == "" {
		result.Description = DefaultDescription
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}

	if m := models.Moment(raw.Moment); m.IsValid() {
		result.Moment = m
	}

	for _, s := range raw.RiskFlags {
		f := models.RiskFlag(s)
		if f.IsValid() && !models.HasRiskFlag(result.RiskFlags, f) {
			result.RiskFlags = append(result.RiskFlags, f)
		}
	}

	return result
}
