package handler

import (
	"log/slog"
	"net/http"

	"weddingfolio/internal/capabilities"
	"weddingfolio/internal/config"
	"weddingfolio/internal/httputil"
)

// VisionModelsHandler serves the vision model catalog
type VisionModelsHandler struct {
	config   *config.Config
	logger   *slog.Logger
	registry *capabilities.Registry
}

// NewVisionModelsHandler creates a new vision models handler
func NewVisionModelsHandler(cfg *config.Config, logger *slog.Logger, registry *capabilities.Registry) *VisionModelsHandler {
	return &VisionModelsHandler{
		config:   cfg,
		logger:   logger,
		registry: registry,
	}
}

// ProviderResponse represents a provider with its models
type ProviderResponse struct {
	ID     string          `json:"id"`
	Models []ModelResponse `json:"models"`
}

// ModelResponse represents a model's capabilities for the API response
type ModelResponse struct {
	ID               string  `json:"id"`
	DisplayName      string  `json:"display_name"`
	Description      string  `json:"description,omitempty"`
	ContextWindow    int     `json:"context_window"`
	SupportsVision   bool    `json:"supports_vision"`
	SupportsJSONMode bool    `json:"supports_json_mode"`
	CanClassify      bool    `json:"can_classify"`
	InputPer1M       float64 `json:"input_per_1m"`
	OutputPer1M      float64 `json:"output_per_1m"`
	Active           bool    `json:"active"` // the configured classifier model
}

// ListModels returns every catalogued provider and model
// GET /api/vision/models
func (h *VisionModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	providers := make([]ProviderResponse, 0)

	for _, provider := range h.registry.GetAllProviders() {
		models, err := h.registry.ListProviderModels(provider)
		if err != nil {
			h.logger.Warn("failed to list provider models", "provider", provider, "error", err)
			continue
		}
		providers = append(providers, h.convertProvider(provider, models))
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"provider":  h.config.VisionProvider,
		"model":     h.config.VisionModel,
		"enabled":   h.config.VisionEnabled(),
		"providers": providers,
	})
}

// convertProvider converts capability registry data to API response format
func (h *VisionModelsHandler) convertProvider(id string, models []capabilities.ModelCapabilities) ProviderResponse {
	resp := ProviderResponse{
		ID:     id,
		Models: make([]ModelResponse, 0, len(models)),
	}

	for _, m := range models {
		resp.Models = append(resp.Models, ModelResponse{
			ID:               m.ID,
			DisplayName:      m.DisplayName,
			Description:      m.Description,
			ContextWindow:    m.ContextWindow,
			SupportsVision:   m.SupportsVision,
			SupportsJSONMode: m.SupportsJSONMode,
			CanClassify:      m.CanClassify(),
			InputPer1M:       m.Pricing.Input,
			OutputPer1M:      m.Pricing.Output,
			Active:           id == h.config.VisionProvider && m.ID == h.config.VisionModel,
		})
	}

	return resp
}
