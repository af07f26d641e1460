package handler

import (
	"log/slog"
	"net/http"

	"weddingfolio/internal/domain/services"
	"weddingfolio/internal/httputil"
)

// WeddingHandler handles wedding HTTP requests
type WeddingHandler struct {
	weddingService services.WeddingService
	logger         *slog.Logger
}

// NewWeddingHandler creates a new wedding handler
func NewWeddingHandler(weddingService services.WeddingService, logger *slog.Logger) *WeddingHandler {
	return &WeddingHandler{
		weddingService: weddingService,
		logger:         logger,
	}
}

// updateWeddingBody is the PATCH body. Notes is tri-state: absent leaves it,
// null clears it.
type updateWeddingBody struct {
	CoupleName       *string                 `json:"couple_name"`
	WeddingDate      *string                 `json:"wedding_date"`
	Venue            *string                 `json:"venue"`
	City             *string                 `json:"city"`
	Country          *string                 `json:"country"`
	WeddingType      *string                 `json:"wedding_type"`
	Vendors          *[]string               `json:"vendors"`
	PortfolioConsent *bool                   `json:"portfolio_consent"`
	SocialConsent    *bool                   `json:"social_consent"`
	MinorsConsent    *bool                   `json:"minors_consent"`
	Notes            httputil.OptionalString `json:"notes"`
}

func (b *updateWeddingBody) toRequest() *services.UpdateWeddingRequest {
	return &services.UpdateWeddingRequest{
		CoupleName:       b.CoupleName,
		WeddingDate:      b.WeddingDate,
		Venue:            b.Venue,
		City:             b.City,
		Country:          b.Country,
		WeddingType:      b.WeddingType,
		Vendors:          b.Vendors,
		PortfolioConsent: b.PortfolioConsent,
		SocialConsent:    b.SocialConsent,
		MinorsConsent:    b.MinorsConsent,
		SetNotes:         b.Notes.Present,
		Notes:            b.Notes.Value,
	}
}

// CreateWedding records a wedding and files it under its folder path
// POST /api/weddings
func (h *WeddingHandler) CreateWedding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.CreateWeddingRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.UserID = userID

	wedding, err := h.weddingService.CreateWedding(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, wedding)
}

// ListWeddings lists the caller's weddings
// GET /api/weddings
func (h *WeddingHandler) ListWeddings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	weddings, err := h.weddingService.ListWeddings(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"weddings": weddings,
	})
}

// GetWedding retrieves a wedding
// GET /api/weddings/{id}
func (h *WeddingHandler) GetWedding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Wedding")
	if !ok {
		return
	}

	wedding, err := h.weddingService.GetWedding(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wedding)
}

// UpdateWedding applies a partial update
// PATCH /api/weddings/{id}
func (h *WeddingHandler) UpdateWedding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Wedding")
	if !ok {
		return
	}

	var body updateWeddingBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	wedding, err := h.weddingService.UpdateWedding(r.Context(), userID, id, body.toRequest())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wedding)
}

// DeleteWedding deletes a wedding and its media
// DELETE /api/weddings/{id}
func (h *WeddingHandler) DeleteWedding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Wedding")
	if !ok {
		return
	}

	if err := h.weddingService.DeleteWedding(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}
