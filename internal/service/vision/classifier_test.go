package vision

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/services"
)

// fakeChat returns a canned response and records the last request
type fakeChat struct {
	content  string
	noChoice bool
	err      error
	panicMsg string
	last     openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.last = req
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	if f.noChoice {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content}},
		},
	}, nil
}

func newTestClassifier(client ChatClient) *Classifier {
	return NewClassifier(client, "gpt-4o-mini", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var ceremonyRequest = services.ClassificationRequest{
	ImageURL: "https://blobs.test/owner/wedding/photo.jpg?sig=1",
	Context: &services.MediaContext{
		CoupleName:         "Ana & Luis",
		DestinationCity:    "Mendoza",
		DestinationCountry: "Argentina",
	},
}

func TestAnalyze_CeremonyPhoto(t *testing.T) {
	chat := &fakeChat{content: `{
		"description": "Ana and Luis exchange vows under a vine-covered arch in a Mendoza vineyard.",
		"tags": ["vows", "vineyard", "arch", "andes"],
		"moment": "Ceremony",
		"risk_flags": ["Shows face"]
	}`}

	got := newTestClassifier(chat).Analyze(context.Background(), ceremonyRequest)

	require.True(t, got.Success, got.Error)
	require.NotNil(t, got.Data)
	assert.Equal(t, models.MomentCeremony, got.Data.Moment)
	assert.Contains(t, got.Data.RiskFlags, models.RiskShowsFace)
	assert.NotEmpty(t, got.Data.Tags)
	assert.Contains(t, got.Data.Description, "vineyard")
	assert.Empty(t, got.Error)

	// Request shape
	assert.Equal(t, "gpt-4o-mini", chat.last.Model)
	require.NotNil(t, chat.last.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, chat.last.ResponseFormat.Type)
	require.Len(t, chat.last.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, chat.last.Messages[0].Role)
	assert.Contains(t, chat.last.Messages[0].Content, "- Couple: Ana & Luis")
	parts := chat.last.Messages[1].MultiContent
	require.Len(t, parts, 2)
	assert.Equal(t, userInstruction, parts[0].Text)
	require.NotNil(t, parts[1].ImageURL)
	assert.Equal(t, ceremonyRequest.ImageURL, parts[1].ImageURL.URL)
}

func TestAnalyze_OutOfSetValuesCorrectedWithoutError(t *testing.T) {
	chat := &fakeChat{content: `{"description": "Dance floor", "tags": ["dj"], "moment": "Reception", "risk_flags": ["Shows guests", "Drunk", "Shows minor"]}`}

	got := newTestClassifier(chat).Analyze(context.Background(), ceremonyRequest)

	require.True(t, got.Success)
	assert.Equal(t, models.MomentOther, got.Data.Moment)
	assert.Equal(t, []models.RiskFlag{models.RiskShowsGuests, models.RiskShowsMinor}, got.Data.RiskFlags)
}

func TestAnalyze_MissingFieldsDefaulted(t *testing.T) {
	got := newTestClassifier(&fakeChat{content: `{}`}).Analyze(context.Background(), ceremonyRequest)

	require.True(t, got.Success)
	assert.Equal(t, &models.Classification{
		Description: DefaultDescription,
		Tags:        []string{},
		Moment:      models.MomentOther,
		RiskFlags:   []models.RiskFlag{},
	}, got.Data)
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name    string
		client  ChatClient
		req     services.ClassificationRequest
		wantMsg string
	}{
		{
			name:    "credential unset",
			client:  nil,
			req:     ceremonyRequest,
			wantMsg: "API key is not configured",
		},
		{
			name:    "model call fails",
			client:  &fakeChat{err: errors.New("429 quota exceeded")},
			req:     ceremonyRequest,
			wantMsg: "429 quota exceeded",
		},
		{
			name:    "no choices",
			client:  &fakeChat{noChoice: true},
			req:     ceremonyRequest,
			wantMsg: "no choices",
		},
		{
			name:    "empty content",
			client:  &fakeChat{content: "  "},
			req:     ceremonyRequest,
			wantMsg: "empty content",
		},
		{
			name:    "not JSON",
			client:  &fakeChat{content: "The photo shows a ceremony."},
			req:     ceremonyRequest,
			wantMsg: "invalid JSON",
		},
		{
			name:    "JSON array instead of object",
			client:  &fakeChat{content: `["Ceremony"]`},
			req:     ceremonyRequest,
			wantMsg: "invalid JSON",
		},
		{
			name:    "JSON null",
			client:  &fakeChat{content: `null`},
			req:     ceremonyRequest,
			wantMsg: "non-object",
		},
		{
			name:    "missing image",
			client:  &fakeChat{content: `{}`},
			req:     services.ClassificationRequest{},
			wantMsg: "image URL is required",
		},
		{
			name:    "client panics",
			client:  &fakeChat{panicMsg: "nil map"},
			req:     ceremonyRequest,
			wantMsg: "nil map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got services.Analysis
			require.NotPanics(t, func() {
				got = newTestClassifier(tt.client).Analyze(context.Background(), tt.req)
			})

			assert.False(t, got.Success)
			assert.Nil(t, got.Data)
			assert.Contains(t, got.Error, tt.wantMsg)
		})
	}
}
