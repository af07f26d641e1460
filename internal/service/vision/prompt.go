package vision

import (
	"fmt"
	"strings"

	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/services"
)

// userInstruction is sent alongside the image on every call.
const userInstruction = "Analyze this wedding photo and answer with the JSON object only."

// baseInstructions is the fixed task description given to the model.
var baseInstructions = fmt.Sprintf(`You are a photo archivist for a wedding photography studio.
Look at the photo and return a JSON object with exactly these keys:

- "description": one or two sentences describing the scene and setting.
- "tags": a list of 3 to 10 short lowercase tags (objects, colors, mood, location type).
- "moment": exactly one of %s.
  Use %q when none of the others clearly applies.
- "risk_flags": a list containing any of %s that apply, or an empty list.
  %q: a recognizable human face is visible.
  %q: a child or teenager is visible.
  %q: people other than the couple are recognizable.
  %q: nudity, intimacy, injuries, or anything unsuitable for public posting.
  When unsure whether a flag applies, include it.

Use the exact spelling of the allowed values. Do not add other keys.`,
	quoteList(momentStrings()),
	models.MomentOther,
	quoteList(riskFlagStrings()),
	models.RiskShowsFace,
	models.RiskShowsMinor,
	models.RiskShowsGuests,
	models.RiskSensitiveContent,
)

// BuildInstructions returns the base instructions followed by a context block
// for the fields present in ctx. Absent fields are left out entirely.
func BuildInstructions(ctx *services.MediaContext) string {
	block := renderContext(ctx)
	if block == "" {
		return baseInstructions
	}
	return block + "\n\n" + baseInstructions
}

func renderContext(ctx *services.MediaContext) string {
	if ctx == nil {
		return ""
	}

	var lines []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, v))
		}
	}

	add("Couple", ctx.CoupleName)
	add("Date", ctx.WeddingDate)
	add("Venue", ctx.Venue)
	add("City", ctx.DestinationCity)
	add("Country", ctx.DestinationCountry)
	add("Type", ctx.WeddingType)

	var vendors []string
	for _, v := range ctx.Vendors {
		if v = strings.TrimSpace(v); v != "" {
			vendors = append(vendors, v)
		}
	}
	if len(vendors) > 0 {
		add("Vendors", strings.Join(vendors, ", "))
	}

	if len(lines) == 0 {
		return ""
	}
	return "Wedding context:\n" + strings.Join(lines, "\n")
}

func momentStrings() []string {
	out := make([]string, len(models.Moments))
	for i, m := range models.Moments {
		out[i] = string(m)
	}
	return out
}

func riskFlagStrings() []string {
	out := make([]string, len(models.RiskFlags))
	for i, f := range models.RiskFlags {
		out[i] = string(f)
	}
	return out
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
