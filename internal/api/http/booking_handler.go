package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/service"
)

// amount accepts a JSON string ("12.50") or a bare number (12.5) and keeps
// its text for the service to parse
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amount(n.String())
	return nil
}

type createBookingRequest struct {
	ParkingSpotID string `json:"parking_spot_id"`
	BookingDate   string `json:"booking_date"`
	CheckInTime   string `json:"check_in_time"`
	CheckOutTime  string `json:"check_out_time"`
	PricePerDay   amount `json:"price_per_day"`
	ServiceFee    amount `json:"service_fee"`
	TotalPrice    amount `json:"total_price"`
}

type createBookingResponse struct {
	BookingID string          `json:"booking_id"`
	Booking   *domain.Booking `json:"booking"`
}

type createReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

type BookingHandler struct {
	bookings service.BookingService
	reviews  service.ReviewService
}

func NewBookingHandler(bookings service.BookingService, reviews service.ReviewService) *BookingHandler {
	return &BookingHandler{bookings: bookings, reviews: reviews}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), userID, domain.BookingRequest{
		ParkingSpotID: req.ParkingSpotID,
		BookingDate:   req.BookingDate,
		CheckInTime:   req.CheckInTime,
		CheckOutTime:  req.CheckOutTime,
		PricePerDay:   string(req.PricePerDay),
		ServiceFee:    string(req.ServiceFee),
		TotalPrice:    string(req.TotalPrice),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createBookingResponse{BookingID: booking.ID, Booking: booking})
}

func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
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

	bookings, err := h.bookings.ListMyBookings(r.Context(), userID, scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(bookings))
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookings.CancelBooking(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), userID, mux.Vars(r)["id"], req.Rating, req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.bookings.Quote(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) ListSpotReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListSpotReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reviews))
}

var errInvalidScope = domain.Validation("Invalid scope, expected upcoming or past")

func parseScope(r *http.Request) (domain.BookingScope, error) {
	switch s := domain.BookingScope(r.URL.Query().Get("scope")); s {
	case domain.BookingScopeAll, domain.BookingScopeUpcoming, domain.BookingScopePast:
		return s, nil
	}
	return "", errInvalidScope
}

// nonNil keeps empty lists encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
