package domain

import "time"

// Availability overrides a listing's default availability and price for one
// date. No row for a date means available at the default price.
type Availability struct {
	ID                 string    `json:"id"`
	ParkingSpotID      string    `json:"parking_spot_id"`
	Date               string    `json:"date"`
	IsAvailable        bool      `json:"is_available"`
	PriceOverrideCents *int64    `json:"price_override_cents,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
