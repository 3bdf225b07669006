package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/service"
)

type availabilityRequest struct {
	Date               string  `json:"date"`
	IsAvailable        *bool   `json:"is_available"`
	PriceOverrideCents *int64  `json:"price_override_cents"`
	Notes              *string `json:"notes"`
}

func (req availabilityRequest) toAvailability() *domain.Availability {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &domain.Availability{
		Date:               req.Date,
		IsAvailable:        available,
		PriceOverrideCents: req.PriceOverrideCents,
		Notes:              req.Notes,
	}
}

type imageUploadRequest struct {
	ContentType string `json:"content_type"`
	IsPrimary   bool   `json:"is_primary"`
}

type imageUploadResponse struct {
	Image     *domain.SpotImage `json:"image"`
	UploadURL string            `json:"upload_url"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// HostHandler serves the host dashboard: availability, images, incoming
// bookings, earnings and reviews
type HostHandler struct {
	host         service.HostService
	availability service.AvailabilityService
	images       service.ImageService
}

func NewHostHandler(host service.HostService, availability service.AvailabilityService, images service.ImageService) *HostHandler {
	return &HostHandler{host: host, availability: availability, images: images}
}

func (h *HostHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	rows, err := h.availability.ListAvailability(r.Context(), userID, mux.Vars(r)["id"], q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (h *HostHandler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	a := req.toAvailability()
	a.ParkingSpotID = mux.Vars(r)["id"]
	if err := h.availability.CreateAvailability(r.Context(), userID, a); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *HostHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	a := req.toAvailability()
	a.ID = mux.Vars(r)["id"]
	if err := h.availability.UpdateAvailability(r.Context(), userID, a); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *HostHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.availability.DeleteAvailability(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HostHandler) RequestImageUpload(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req imageUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	img, uploadURL, expiresAt, err := h.images.RequestImageUpload(r.Context(), userID, mux.Vars(r)["id"], req.ContentType, req.IsPrimary)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, imageUploadResponse{Image: img, UploadURL: uploadURL, ExpiresAt: expiresAt})
}

func (h *HostHandler) ConfirmImageUpload(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	img, err := h.images.ConfirmImageUpload(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *HostHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.images.DeleteImage(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HostHandler) ListHostBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	scope, err := parseScope(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	bookings, err := h.host.ListHostBookings(r.Context(), userID, scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(bookings))
}

func (h *HostHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.host.ConfirmBooking(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *HostHandler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	earnings, err := h.host.GetEarnings(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, earnings)
}

func (h *HostHandler) ListHostReviews(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	reviews, err := h.host.ListHostReviews(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reviews))
}
