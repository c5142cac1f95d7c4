package batch

//go:generate mockgen -source=runner.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sciencevideodb/internal/domain"
)

type ChannelLister interface {
	GetChannelsDueForUpdate(ctx context.Context) ([]domain.Channel, error)
}

// Syncer defines the interface for single channel sync operations.
type Syncer interface {
	SyncChannel(ctx context.Context, channelID string) (*domain.IngestionStatus, error)
}

// Runner syncs every due channel, one at a time, in due order.
type Runner struct {
	channels ChannelLister
	syncer   Syncer
	logger   *slog.Logger
}

func NewRunner(channels ChannelLister, syncer Syncer, logger *slog.Logger) *Runner {
	return &Runner{
		channels: channels,
		syncer:   syncer,
		logger:   logger.With("component", "batch"),
	}
}

// Run processes the channels that are due now. A failed channel is counted
// and the batch moves on; only a failure to list due channels or a cancelled
// context ends it early. The summary is returned in both cases.
func (r *Runner) Run(ctx context.Context) (*domain.BatchSummary, error) {
	startTime := time.Now()

	due, err := r.channels.GetChannelsDueForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("list due channels: %w", err)
	}

	r.logger.Info("batch started", "due_channels", len(due))

	summary := &domain.BatchSummary{}
	for i := range due {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("batch interrupted", "remaining", len(due)-i)
			summary.Duration = time.Since(startTime)
			return summary, err
		}

		ch := &due[i]
		r.logger.Info("syncing channel",
			"channel_id", ch.ChannelID,
			"channel_name", ch.ChannelName,
			"priority", ch.Priority,
			"position", i+1,
			"total", len(due),
		)

		status, err := r.syncer.SyncChannel(ctx, ch.ChannelID)
		if err != nil {
			r.logger.Error("channel sync failed", "channel_id", ch.ChannelID, "error", err)
		}
		summary.Add(status)
	}

	summary.Duration = time.Since(startTime)

	r.logger.Info("batch completed",
		"attempted", summary.ChannelsAttempted,
		"completed", summary.ChannelsCompleted,
		"failed", summary.ChannelsFailed,
		"videos_processed", summary.VideosProcessed,
		"videos_new", summary.VideosNew,
		"videos_updated", summary.VideosUpdated,
		"errors", summary.Errors,
		"duration", summary.Duration,
	)

	return summary, nil
}
