package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/services"
	"weddingfolio/internal/httputil"
)

// pngHeader is enough for content sniffing
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartUpload(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/weddings/w-1/media", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.SetPathValue("id", "w-1")
	return httputil.WithUserID(r, testUser)
}

func TestMediaHandler_Upload(t *testing.T) {
	tests := []struct {
		name            string
		declared        string
		wantContentType string
	}{
		{name: "declared type", declared: "image/jpeg", wantContentType: "image/jpeg"},
		{name: "sniffed when missing", declared: "", wantContentType: "image/png"},
		{name: "sniffed when generic", declared: "application/octet-stream", wantContentType: "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubMediaService{
				add: func(req *services.AddMediaRequest, body []byte) (*models.Media, error) {
					assert.Equal(t, testUser, req.UserID)
					assert.Equal(t, "w-1", req.WeddingID)
					assert.Equal(t, "IMG_0042.png", req.Filename)
					assert.Equal(t, tt.wantContentType, req.ContentType)
					assert.Equal(t, int64(len(pngHeader)), req.Size)
					assert.Equal(t, pngHeader, body, "sniffing must not consume the body")
					return &models.Media{ID: "m-1", ClassificationError: strPtr("vision model call failed")}, nil
				},
			}
			h := NewMediaHandler(svc, testLogger())

			w := httptest.NewRecorder()
			h.UploadMedia(w, multipartUpload(t, "file", "IMG_0042.png", tt.declared, pngHeader))

			require.Equal(t, http.StatusCreated, w.Code)
			assert.Contains(t, w.Body.String(), `"id":"m-1"`)
		})
	}
}

func TestMediaHandler_UploadErrors(t *testing.T) {
	svc := &stubMediaService{
		add: func(req *services.AddMediaRequest, body []byte) (*models.Media, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewMediaHandler(svc, testLogger())

	t.Run("missing file field", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.UploadMedia(w, multipartUpload(t, "photo", "a.png", "image/png", pngHeader))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `\"file\" is required`)
	})

	t.Run("not multipart", func(t *testing.T) {
		r := authedRequest(http.MethodPost, "/api/weddings/w-1/media", `{"file": "x"}`)
		r.SetPathValue("id", "w-1")
		w := httptest.NewRecorder()
		h.UploadMedia(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("other owner", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.UploadMedia(w, multipartUpload(t, "file", "a.png", "image/png", pngHeader))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMediaHandler_CheckPublication(t *testing.T) {
	svc := &stubMediaService{
		publication: func(userID, id string, channel services.PublicationChannel) (*services.PublicationDecision, error) {
			if !channel.IsValid() {
				return nil, domain.ErrValidation
			}
			return &services.PublicationDecision{
				MediaID: id,
				Channel: channel,
				Allowed: false,
				Reasons: []string{"wedding has no social media consent"},
			}, nil
		},
	}
	h := NewMediaHandler(svc, testLogger())

	request := func(query string) *http.Request {
		r := authedRequest(http.MethodGet, "/api/media/m-1/publication"+query, "")
		r.SetPathValue("id", "m-1")
		return r
	}

	w := httptest.NewRecorder()
	h.CheckPublication(w, request("?channel=social"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"media_id": "m-1",
		"channel": "social",
		"allowed": false,
		"reasons": ["wedding has no social media consent"]
	}`, w.Body.String())

	w = httptest.NewRecorder()
	h.CheckPublication(w, request(""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.CheckPublication(w, request("?channel=billboard"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
