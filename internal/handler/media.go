package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"weddingfolio/internal/config"
	"weddingfolio/internal/domain/services"
	"weddingfolio/internal/httputil"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the image itself.
const multipartOverhead = 1 << 20

// MediaHandler handles media HTTP requests
type MediaHandler struct {
	mediaService services.MediaService
	logger       *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService services.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		logger:       logger,
	}
}

// UploadMedia stores an image for a wedding and classifies it
// POST /api/weddings/{id}/media (multipart field "file")
// Returns 201 even when classification failed; the failure is on the item.
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	weddingID, ok := pathID(w, r, "Wedding")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxMediaUploadBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			httputil.RespondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", config.MaxMediaUploadBytes))
		case errors.Is(err, http.ErrMissingFile):
			httputil.RespondError(w, http.StatusBadRequest, `multipart field "file" is required`)
		default:
			httputil.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		}
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	contentType, err := detectContentType(file, header)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	media, err := h.mediaService.AddMedia(r.Context(), &services.AddMediaRequest{
		UserID:      userID,
		WeddingID:   weddingID,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, media)
}

// detectContentType prefers the part's declared type and sniffs the first
// bytes when the client sent none or a generic one.
func detectContentType(file multipart.File, header *multipart.FileHeader) (string, error) {
	if declared := header.Header.Get("Content-Type"); declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt, nil
		}
	}

	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	mt, _, _ := mime.ParseMediaType(http.DetectContentType(buf[:n]))
	return mt, nil
}

// ListMedia lists a wedding's media with signed URLs
// GET /api/weddings/{id}/media
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	weddingID, ok := pathID(w, r, "Wedding")
	if !ok {
		return
	}

	media, err := h.mediaService.ListMedia(r.Context(), userID, weddingID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"media": media,
	})
}

// ReclassifyWedding re-runs the classifier over every photo of a wedding
// POST /api/weddings/{id}/reclassify
func (h *MediaHandler) ReclassifyWedding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	weddingID, ok := pathID(w, r, "Wedding")
	if !ok {
		return
	}

	summary, err := h.mediaService.ReclassifyWedding(r.Context(), userID, weddingID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// GetMedia retrieves a media item with a fresh signed URL
// GET /api/media/{id}
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Media")
	if !ok {
		return
	}

	media, err := h.mediaService.GetMedia(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, media)
}

// DeleteMedia deletes a media item and its stored object
// DELETE /api/media/{id}
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Media")
	if !ok {
		return
	}

	if err := h.mediaService.DeleteMedia(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}

// ReclassifyMedia re-runs the classifier for one photo
// POST /api/media/{id}/reclassify
func (h *MediaHandler) ReclassifyMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Media")
	if !ok {
		return
	}

	media, err := h.mediaService.ReclassifyMedia(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, media)
}

// CheckPublication reports whether a photo may be published on a channel
// GET /api/media/{id}/publication?channel=portfolio|social
func (h *MediaHandler) CheckPublication(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Media")
	if !ok {
		return
	}

	channel := services.PublicationChannel(r.URL.Query().Get("channel"))
	if channel == "" {
		httputil.RespondError(w, http.StatusBadRequest, "channel query parameter is required")
		return
	}

	decision, err := h.mediaService.CheckPublication(r.Context(), userID, id, channel)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, decision)
}
