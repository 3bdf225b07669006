package jobs

import (
	"context"

	"parkspot-backend/internal/logger"
)

// CompletePastBookings marks pending and confirmed bookings whose check-out
// has passed as completed, which is what lets guests review them.
// Booking wall-clock times are compared in the configured booking timezone.
func (jr *JobRunner) CompletePastBookings() {
	jr.runWithRecovery("CompletePastBookings", func() {
		ctx := context.Background()
		now := jr.now().In(jr.config.BookingLocation())

		ids, err := jr.bookings.CompleteEnded(ctx, now)
		if err != nil {
			logger.Error("Failed to complete past bookings", "error", err)
			return
		}

		logger.Info("Marked bookings as completed", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Booking completed", "bookingID", id)
		}
	})
}
