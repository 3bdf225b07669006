package jobs

import (
	"context"

	"parkspot-backend/internal/logger"
)

// PurgeStaleImages deletes image rows that were never confirmed within the
// pending TTL, along with any object a client managed to upload
func (jr *JobRunner) PurgeStaleImages() {
	jr.runWithRecovery("PurgeStaleImages", func() {
		ctx := context.Background()
		cutoff := jr.now().Add(-jr.config.PendingImageTTL())

		images, err := jr.images.DeletePendingBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge stale images", "error", err)
			return
		}

		failed := 0
		for _, img := range images {
			if err := jr.storage.DeleteFile(ctx, img.StorageKey); err != nil {
				logger.Warn("Failed to delete stale image object", "imageID", img.ID, "key", img.StorageKey, "error", err)
				failed++
			}
		}

		logger.Info("Purged stale images", "count", len(images), "objectDeleteFailures", failed)
	})
}
