package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"parkspot-backend/internal/security"
	"parkspot-backend/internal/service"
	"parkspot-backend/internal/storage"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Bookings     service.BookingService
	Reviews      service.ReviewService
	Availability service.AvailabilityService
	Listings     service.ListingService
	Host         service.HostService
	Images       service.ImageService
}

type RouterConfig struct {
	Services     Services
	TokenManager security.TokenManager
	// LocalStore, when set, gets the mock upload and download routes
	LocalStore storage.LocalStore
	DB         Pinger
}

// NewRouter registers every API route under the name its security level is
// looked up by
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)
	r.Use(NewAuthMiddleware(cfg.TokenManager).Handler)

	r.HandleFunc("/healthz", healthHandler(cfg.DB)).Methods(http.MethodGet).Name("Health")

	listings := NewListingHandler(cfg.Services.Listings)
	bookings := NewBookingHandler(cfg.Services.Bookings, cfg.Services.Reviews)
	host := NewHostHandler(cfg.Services.Host, cfg.Services.Availability, cfg.Services.Images)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/listings", listings.SearchListings).Methods(http.MethodGet).Name("SearchListings")
	api.HandleFunc("/listings/{id}", listings.GetListing).Methods(http.MethodGet).Name("GetListing")
	api.HandleFunc("/listings/{id}/reviews", bookings.ListSpotReviews).Methods(http.MethodGet).Name("ListSpotReviews")
	api.HandleFunc("/listings/{id}/quote", bookings.Quote).Methods(http.MethodGet).Name("GetQuote")
	api.HandleFunc("/amenities", listings.ListAmenities).Methods(http.MethodGet).Name("ListAmenities")
	api.HandleFunc("/events", listings.ListEvents).Methods(http.MethodGet).Name("ListEvents")

	api.HandleFunc("/bookings", bookings.CreateBooking).Methods(http.MethodPost).Name("CreateBooking")
	api.HandleFunc("/bookings", bookings.ListMyBookings).Methods(http.MethodGet).Name("ListMyBookings")
	api.HandleFunc("/bookings/{id}", bookings.GetBooking).Methods(http.MethodGet).Name("GetBooking")
	api.HandleFunc("/bookings/{id}/cancel", bookings.CancelBooking).Methods(http.MethodPost).Name("CancelBooking")
	api.HandleFunc("/bookings/{id}/review", bookings.CreateReview).Methods(http.MethodPost).Name("CreateReview")

	api.HandleFunc("/host/listings", listings.ListMyListings).Methods(http.MethodGet).Name("ListMyListings")
	api.HandleFunc("/host/listings", listings.CreateListing).Methods(http.MethodPost).Name("CreateListing")
	api.HandleFunc("/host/listings/{id}", listings.UpdateListing).Methods(http.MethodPut).Name("UpdateListing")
	api.HandleFunc("/host/listings/{id}", listings.DeleteListing).Methods(http.MethodDelete).Name("DeleteListing")
	api.HandleFunc("/host/listings/{id}/availability", host.ListAvailability).Methods(http.MethodGet).Name("ListAvailability")
	api.HandleFunc("/host/listings/{id}/availability", host.CreateAvailability).Methods(http.MethodPost).Name("CreateAvailability")
	api.HandleFunc("/host/availability/{id}", host.UpdateAvailability).Methods(http.MethodPut).Name("UpdateAvailability")
	api.HandleFunc("/host/availability/{id}", host.DeleteAvailability).Methods(http.MethodDelete).Name("DeleteAvailability")
	api.HandleFunc("/host/listings/{id}/images", host.RequestImageUpload).Methods(http.MethodPost).Name("RequestImageUpload")
	api.HandleFunc("/host/images/{id}/confirm", host.ConfirmImageUpload).Methods(http.MethodPost).Name("ConfirmImageUpload")
	api.HandleFunc("/host/images/{id}", host.DeleteImage).Methods(http.MethodDelete).Name("DeleteImage")
	api.HandleFunc("/host/bookings", host.ListHostBookings).Methods(http.MethodGet).Name("ListHostBookings")
	api.HandleFunc("/host/bookings/{id}/confirm", host.ConfirmBooking).Methods(http.MethodPost).Name("ConfirmBooking")
	api.HandleFunc("/host/earnings", host.GetEarnings).Methods(http.MethodGet).Name("GetEarnings")
	api.HandleFunc("/host/reviews", host.ListHostReviews).Methods(http.MethodGet).Name("ListHostReviews")

	if cfg.LocalStore != nil {
		RegisterMockStorageRoutes(r, cfg.LocalStore)
	}
	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
