package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/services"
	"weddingfolio/internal/httputil"
)

const testUser = "5f1c0a4e-0000-4000-8000-000000000001"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authedRequest builds a request as the auth middleware would hand it on
func authedRequest(method, target, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, rd)
	return httputil.WithUserID(r, testUser)
}

type stubFolderService struct {
	ensure   func(userID string, req *services.EnsurePathRequest) (*services.EnsurePathResponse, error)
	get      func(userID, id string) (*models.Folder, error)
	children func(userID string, parentID *string) ([]models.Folder, error)
	tree     func(userID string) ([]*models.FolderTreeNode, error)
}

func (s *stubFolderService) EnsureFolderPath(ctx context.Context, userID string, req *services.EnsurePathRequest) (*services.EnsurePathResponse, error) {
	return s.ensure(userID, req)
}

func (s *stubFolderService) GetFolder(ctx context.Context, userID, id string) (*models.Folder, error) {
	return s.get(userID, id)
}

func (s *stubFolderService) ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Folder, error) {
	return s.children(userID, parentID)
}

func (s *stubFolderService) GetTree(ctx context.Context, userID string) ([]*models.FolderTreeNode, error) {
	return s.tree(userID)
}

type stubWeddingService struct {
	services.WeddingService // unset methods panic

	create func(req *services.CreateWeddingRequest) (*models.Wedding, error)
	update func(userID, id string, req *services.UpdateWeddingRequest) (*models.Wedding, error)
	remove func(userID, id string) error
}

func (s *stubWeddingService) CreateWedding(ctx context.Context, req *services.CreateWeddingRequest) (*models.Wedding, error) {
	return s.create(req)
}

func (s *stubWeddingService) UpdateWedding(ctx context.Context, userID, id string, req *services.UpdateWeddingRequest) (*models.Wedding, error) {
	return s.update(userID, id, req)
}

func (s *stubWeddingService) DeleteWedding(ctx context.Context, userID, id string) error {
	return s.remove(userID, id)
}

type stubMediaService struct {
	services.MediaService

	add         func(req *services.AddMediaRequest, body []byte) (*models.Media, error)
	publication func(userID, id string, channel services.PublicationChannel) (*services.PublicationDecision, error)
}

func (s *stubMediaService) AddMedia(ctx context.Context, req *services.AddMediaRequest) (*models.Media, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	return s.add(req, body)
}

func (s *stubMediaService) CheckPublication(ctx context.Context, userID, id string, channel services.PublicationChannel) (*services.PublicationDecision, error) {
	return s.publication(userID, id, channel)
}
