package domain

import "time"

type SpotType string

const (
	SpotTypeDriveway SpotType = "driveway"
	SpotTypeGarage   SpotType = "garage"
	SpotTypeLot      SpotType = "lot"
	SpotTypeStreet   SpotType = "street"
)

func (t SpotType) Valid() bool {
	switch t {
	case SpotTypeDriveway, SpotTypeGarage, SpotTypeLot, SpotTypeStreet:
		return true
	}
	return false
}

type ParkingSpot struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zip_code"`
	Type             SpotType  `json:"type"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	SpacesAvailable  int32     `json:"spaces_available"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type ImageStatus string

const (
	ImageStatusPending   ImageStatus = "pending"
	ImageStatusConfirmed ImageStatus = "confirmed"
)

type SpotImage struct {
	ID            string      `json:"id"`
	ParkingSpotID string      `json:"parking_spot_id"`
	StorageKey    string      `json:"-"`
	ContentType   string      `json:"content_type"`
	URL           string      `json:"url,omitempty"` // Populated with a download URL when listed
	IsPrimary     bool        `json:"is_primary"`
	Status        ImageStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotDetail is the public listing page payload.
type SpotDetail struct {
	Spot          ParkingSpot `json:"spot"`
	Images        []SpotImage `json:"images"`
	Amenities     []Amenity   `json:"amenities"`
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int32       `json:"review_count"`
}

const (
	DefaultSearchLimit = 24
	MaxSearchLimit     = 100
)

type SpotFilter struct {
	Types         []SpotType `json:"types,omitempty"`
	MaxPriceCents int64      `json:"max_price_cents,omitempty"`
	City          string     `json:"city,omitempty"`
	Limit         int32      `json:"limit"`
}
