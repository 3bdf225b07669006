package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/service"
	"parkspot-backend/internal/utils"
)

type spotRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ZipCode          string   `json:"zip_code"`
	Type             string   `json:"type"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	SpacesAvailable  int32    `json:"spaces_available"`
	IsActive         *bool    `json:"is_active"`
	AmenityIDs       []string `json:"amenity_ids"`
}

func (req spotRequest) toSpot(id string) *domain.ParkingSpot {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &domain.ParkingSpot{
		ID:               id,
		Title:            req.Title,
		Description:      req.Description,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		Type:             domain.SpotType(req.Type),
		PricePerDayCents: req.PricePerDayCents,
		SpacesAvailable:  req.SpacesAvailable,
		IsActive:         active,
	}
}

type ListingHandler struct {
	listings service.ListingService
}

func NewListingHandler(listings service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

func (h *ListingHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSpotFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	spots, err := h.listings.SearchListings(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(spots))
}

func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	detail, err := h.listings.GetListing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ListingHandler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.listings.ListAmenities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(amenities))
}

func (h *ListingHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.listings.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(events))
}

func (h *ListingHandler) ListMyListings(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	spots, err := h.listings.ListMyListings(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(spots))
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req spotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	spot := req.toSpot("")
	if err := h.listings.CreateListing(r.Context(), userID, spot, req.AmenityIDs); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, spot)
}

func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req spotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	spot := req.toSpot(mux.Vars(r)["id"])
	if err := h.listings.UpdateListing(r.Context(), userID, spot, req.AmenityIDs); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.listings.DeleteListing(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var errInvalidLimit = domain.Validation("Invalid limit")

// parseSpotFilter reads ?type=garage,lot&max_price=25.00&city=Austin&limit=20.
// type may also be repeated.
func parseSpotFilter(r *http.Request) (domain.SpotFilter, error) {
	q := r.URL.Query()
	var filter domain.SpotFilter

	for _, raw := range q["type"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Types = append(filter.Types, domain.SpotType(t))
			}
		}
	}

	if raw := q.Get("max_price"); raw != "" {
		cents, err := utils.ParseAmountCents(raw)
		if err != nil {
			if errors.Is(err, utils.ErrNegativeAmount) {
				return filter, domain.ErrNegativePrice
			}
			return filter, domain.ErrInvalidPrice
		}
		filter.MaxPriceCents = cents
	}

	filter.City = strings.TrimSpace(q.Get("city"))

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return filter, errInvalidLimit
		}
		filter.Limit = int32(n)
	}
	return filter, nil
}
