package portfolio

import (
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/services"
)

// Reasons reported by EvaluatePublication
const (
	ReasonUnclassified       = "media has not been classified yet"
	ReasonSensitiveContent   = "media is flagged as sensitive content"
	ReasonNoPortfolioConsent = "couple has not consented to portfolio use"
	ReasonNoSocialConsent    = "couple has not consented to social media use"
	ReasonNoMinorsConsent    = "photo shows a minor and minors consent is missing"
)

// EvaluatePublication decides whether a photo may be published on channel.
// Unclassified photos are never publishable. Every failed rule is listed in
// Reasons; Allowed is true only when Reasons is empty.
func EvaluatePublication(media *models.Media, wedding *models.Wedding, channel services.PublicationChannel) *services.PublicationDecision {
	reasons := []string{}

	if !media.IsClassified() {
		reasons = append(reasons, ReasonUnclassified)
	}
	if models.HasRiskFlag(media.RiskFlags, models.RiskSensitiveContent) {
		reasons = append(reasons, ReasonSensitiveContent)
	}

	switch channel {
	case services.ChannelPortfolio:
		if !wedding.PortfolioConsent {
			reasons = append(reasons, ReasonNoPortfolioConsent)
		}
	case services.ChannelSocial:
		if !wedding.SocialConsent {
			reasons = append(reasons, ReasonNoSocialConsent)
		}
		if models.HasRiskFlag(media.RiskFlags, models.RiskShowsMinor) && !wedding.MinorsConsent {
			reasons = append(reasons, ReasonNoMinorsConsent)
		}
	}

	return &services.PublicationDecision{
		MediaID: media.ID,
		Channel: channel,
		Allowed: len(reasons) == 0,
		Reasons: reasons,
	}
}
