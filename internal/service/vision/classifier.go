package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"weddingfolio/internal/config"
	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/services"
)

// ChatClient is the subset of the OpenAI-compatible API the classifier uses.
// *openai.Client satisfies it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewChatClient builds an OpenAI-compatible client from cfg. It returns nil
// when no API key is configured; the classifier then reports every call as failed.
func NewChatClient(cfg *config.Config) ChatClient {
	if !cfg.VisionEnabled() {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// Classifier turns an image into a validated models.Classification using a
// vision-capable language model. It keeps no per-call state and is safe for
// concurrent use.
type Classifier struct {
	client ChatClient
	model  string
	logger *slog.Logger
}

// NewClassifier creates a classifier. client may be nil.
func NewClassifier(client ChatClient, model string, logger *slog.Logger) *Classifier {
	return &Classifier{
		client: client,
		model:  model,
		logger: logger,
	}
}

var _ services.MediaClassifier = (*Classifier)(nil)

// Analyze classifies one image. It never returns an error or panics: every
// failure is reported as Analysis{Success: false, Error: ...} and no partial
// data is returned.
func (c *Classifier) Analyze(ctx context.Context, req services.ClassificationRequest) (analysis services.Analysis) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("media classification panicked",
				"model", c.model,
				"panic", r,
			)
			analysis = services.Analysis{Success: false, Error: fmt.Sprintf("classification failed: %v", r)}
		}
	}()

	result, err := c.classify(ctx, req)
	if err != nil {
		c.logger.Warn("media classification failed",
			"model", c.model,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return services.Analysis{Success: false, Error: err.Error()}
	}

	c.logger.Info("media classified",
		"model", c.model,
		"moment", result.Moment,
		"risk_flags", len(result.RiskFlags),
		"tags", len(result.Tags),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return services.Analysis{Success: true, Data: &result}
}

func (c *Classifier) classify(ctx context.Context, req services.ClassificationRequest) (result models.Classification, err error) {
	if c.client == nil {
		return result, &domain.ClassificationError{Message: "vision model API key is not configured"}
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return result, &domain.ClassificationError{Message: "image URL is required"}
	}

	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(req))
	if err != nil {
		return result, &domain.ClassificationError{Message: "vision model call failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return result, &domain.ClassificationError{Message: "vision model returned no choices"}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return result, &domain.ClassificationError{Message: "vision model returned empty content"}
	}

	payload, err := ParseContent(content)
	if err != nil {
		return result, err
	}

	return Validate(Normalize(payload)), nil
}

// buildRequest assembles the chat completion request for one image.
func (c *Classifier) buildRequest(req services.ClassificationRequest) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: BuildInstructions(req.Context),
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: userInstruction,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    req.ImageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}

// ParseContent decodes the model's answer, which must be a JSON object.
func ParseContent(content string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, &domain.ClassificationError{Message: "vision model returned invalid JSON", Err: err}
	}
	if payload == nil {
		return nil, &domain.ClassificationError{Message: "vision model returned a non-object JSON value"}
	}
	return payload, nil
}
