package domain

type Venue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// Event is read-only here; venues and events are curated outside this
// service.
type Event struct {
	ID        string `json:"id"`
	VenueID   string `json:"venue_id"`
	Venue     *Venue `json:"venue,omitempty"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}
