package domain

import "time"

const (
	MinReviewCommentLength = 10
	MaxReviewCommentLength = 1000
)

type Review struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	ParkingSpotID string    `json:"parking_spot_id"`
	Rating        int32     `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}
