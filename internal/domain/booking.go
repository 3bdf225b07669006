package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

const (
	ServiceFeePercent  = 15
	CancellationWindow = 24 * time.Hour
)

// ActiveBookingStatuses count against a spot's capacity.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

type Booking struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	ParkingSpotID    string        `json:"parking_spot_id"`
	SpotTitle        string        `json:"spot_title,omitempty"` // Populated in list queries
	BookingDate      string        `json:"booking_date"`
	CheckInTime      string        `json:"check_in_time"`
	CheckOutTime     string        `json:"check_out_time"`
	PricePerDayCents int64         `json:"price_per_day_cents"`
	ServiceFeeCents  int64         `json:"service_fee_cents"`
	TotalPriceCents  int64         `json:"total_price_cents"`
	Status           BookingStatus `json:"status"`
	HasReview        bool          `json:"has_review"`
	CreatedAt        time.Time     `json:"created_at"`
}

// BookingRequest is the raw guest payload. Amounts are decimal strings and
// only serve as a display hint; the stored price is computed server-side.
type BookingRequest struct {
	ParkingSpotID string
	BookingDate   string
	CheckInTime   string
	CheckOutTime  string
	PricePerDay   string
	ServiceFee    string
	TotalPrice    string
}

type BookingScope string

const (
	BookingScopeAll      BookingScope = ""
	BookingScopeUpcoming BookingScope = "upcoming"
	BookingScopePast     BookingScope = "past"
)

// Statuses returns the statuses a scope selects; nil means all.
func (s BookingScope) Statuses() []BookingStatus {
	switch s {
	case BookingScopeUpcoming:
		return []BookingStatus{BookingStatusPending, BookingStatusConfirmed}
	case BookingScopePast:
		return []BookingStatus{BookingStatusCompleted, BookingStatusCancelled}
	}
	return nil
}

type Quote struct {
	ParkingSpotID    string `json:"parking_spot_id"`
	Date             string `json:"date"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	ServiceFeeCents  int64  `json:"service_fee_cents"`
	TotalPriceCents  int64  `json:"total_price_cents"`
}

type Earnings struct {
	TotalCents     int64     `json:"total_cents"`
	PendingCents   int64     `json:"pending_cents"`
	CompletedCents int64     `json:"completed_cents"`
	RecentPayouts  []Booking `json:"recent_payouts"`
}
