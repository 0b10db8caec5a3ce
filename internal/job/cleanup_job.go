// Package job holds the background maintenance tasks run on a cron schedule.
package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/client"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
)

// CleanupJob removes profile image uploads that were never confirmed
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
	now            func() time.Time
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		logger:         logger,
		now:            time.Now,
	}
}

// Run deletes every expired TEMP attachment from object storage and then
// from the database. Rows whose object could not be deleted are kept for the
// next run.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	expiredAttachments, err := j.attachmentRepo.FindExpiredTempAttachments(ctx, j.now())
	if err != nil {
		j.logger.Error("Failed to find expired temporary attachments", zap.Error(err))
		return
	}

	if len(expiredAttachments) == 0 {
		j.logger.Debug("No expired temporary attachments found")
		return
	}

	var deletable []uuid.UUID
	failCount := 0

	for _, attachment := range expiredAttachments {
		if attachment.FileKey != "" {
			if err := j.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
				j.logger.Warn("Failed to delete file from S3",
					zap.String("attachment_id", attachment.ID.String()),
					zap.String("file_key", attachment.FileKey),
					zap.Error(err),
				)
				failCount++
				continue
			}
		}
		deletable = append(deletable, attachment.ID)
	}

	if len(deletable) > 0 {
		if err := j.attachmentRepo.DeleteBatch(ctx, deletable); err != nil {
			j.logger.Error("Failed to delete attachments from database",
				zap.Int("count", len(deletable)),
				zap.Error(err),
			)
			return
		}
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_expired", len(expiredAttachments)),
		zap.Int("deleted", len(deletable)),
		zap.Int("failed", failCount),
	)
}
