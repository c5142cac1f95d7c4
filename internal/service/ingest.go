package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sciencevideodb/internal/domain"
)

const defaultMaxVideosPerRun = 50

type Config struct {
	MaxVideosPerRun    int
	TranscriptLanguage string
}

// ChannelSyncService ingests the new videos of one channel per call.
type ChannelSyncService struct {
	source      VideoSource
	channels    ChannelStore
	videos      VideoStore
	transcripts TranscriptStore
	publisher   Publisher
	logger      *slog.Logger
	config      Config
}

// NewChannelSyncService builds the service. publisher may be nil.
func NewChannelSyncService(
	source VideoSource,
	channels ChannelStore,
	videos VideoStore,
	transcripts TranscriptStore,
	publisher Publisher,
	logger *slog.Logger,
	cfg Config,
) *ChannelSyncService {
	if cfg.MaxVideosPerRun <= 0 {
		cfg.MaxVideosPerRun = defaultMaxVideosPerRun
	}
	if cfg.TranscriptLanguage == "" {
		cfg.TranscriptLanguage = "en"
	}
	return &ChannelSyncService{
		source:      source,
		channels:    channels,
		videos:      videos,
		transcripts: transcripts,
		publisher:   publisher,
		logger:      logger.With("component", "channel_sync"),
		config:      cfg,
	}
}

// SyncChannel fetches videos published since the channel was last checked,
// upserts them with their transcripts and advances the channel's check
// cursor. Per-video failures are recorded on the returned status and do not
// stop the run. A failure to resolve the channel, fetch its videos or
// advance the cursor fails the run: the status is returned together with
// the error.
func (s *ChannelSyncService) SyncChannel(ctx context.Context, channelID string) (*domain.IngestionStatus, error) {
	status := &domain.IngestionStatus{
		ChannelID: channelID,
		State:     domain.RunProcessing,
		StartedAt: time.Now(),
	}
	logger := s.logger.With("channel_id", channelID)

	channel, err := s.channels.GetChannelByChannelID(ctx, channelID, domain.SourceYouTube)
	if err != nil {
		return s.fail(logger, status, fmt.Errorf("get channel: %w", err))
	}

	logger.Info("starting channel sync",
		"channel_name", channel.ChannelName,
		"last_checked_at", channel.LastCheckedAt,
		"max_videos", s.config.MaxVideosPerRun,
	)

	videos, err := s.source.FetchChannelVideos(ctx, channelID, channel.LastCheckedAt, s.config.MaxVideosPerRun)
	if err != nil {
		return s.fail(logger, status, fmt.Errorf("fetch channel videos: %w", err))
	}

	logger.Info("fetched videos from platform", "count", len(videos))

	var latest *time.Time
	for i := range videos {
		v := &videos[i]
		if latest == nil || v.PublishedAt.After(*latest) {
			published := v.PublishedAt
			latest = &published
		}

		logger.Debug("processing video", "video_id", v.ID, "index", i+1, "total", len(videos))
		s.syncVideo(ctx, logger.With("video_id", v.ID), channel, v, status)
	}

	if err := s.channels.UpdateChannelLastChecked(ctx, channel.ID, latest); err != nil {
		return s.fail(logger, status, fmt.Errorf("update channel last checked: %w", err))
	}

	status.Complete()

	logger.Info("channel sync completed",
		"processed", status.VideosProcessed,
		"new", status.VideosNew,
		"updated", status.VideosUpdated,
		"errors", len(status.Errors),
		"duration", status.CompletedAt.Sub(status.StartedAt),
	)

	return status, nil
}

func (s *ChannelSyncService) syncVideo(ctx context.Context, logger *slog.Logger, channel *domain.Channel, pv *domain.PlatformVideo, status *domain.IngestionStatus) {
	isNew := false
	if _, err := s.videos.GetVideoBySourceID(ctx, pv.ID, domain.SourceYouTube); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.videoError(logger, status, pv.ID, fmt.Errorf("lookup video: %w", err))
			return
		}
		isNew = true
	}

	hasCaptions := s.source.HasCaptions(ctx, pv.ID)

	stored, err := s.videos.UpsertVideo(ctx, canonicalVideo(pv, channel, hasCaptions), channel.ID)
	if err != nil {
		s.videoError(logger, status, pv.ID, err)
		return
	}

	status.VideosProcessed++
	if isNew {
		status.VideosNew++
	} else {
		status.VideosUpdated++
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, stored, isNew); err != nil {
			s.videoError(logger, status, pv.ID, fmt.Errorf("publish event: %w", err))
		}
	}

	if !hasCaptions {
		logger.Debug("video stored", "new", isNew, "captions", false)
		return
	}

	entries, err := s.source.FetchTranscriptWithTimestamps(ctx, pv.ID, s.config.TranscriptLanguage)
	if err != nil {
		s.videoError(logger, status, pv.ID, fmt.Errorf("fetch transcript: %w", err))
		return
	}
	if len(entries) == 0 {
		s.videoError(logger, status, pv.ID, errors.New("transcript is empty"))
		return
	}

	segments, err := s.transcripts.InsertTranscriptSegments(ctx, stored.ID, segmentsFromCaptions(stored.ID, entries))
	if err != nil {
		s.videoError(logger, status, pv.ID, fmt.Errorf("store transcript: %w", err))
		return
	}

	logger.Debug("video stored", "new", isNew, "captions", true, "segments", len(segments))
}

func (s *ChannelSyncService) videoError(logger *slog.Logger, status *domain.IngestionStatus, videoID string, err error) {
	logger.Warn("video failed", "error", err)
	status.AddError(videoID, err.Error())
}

func (s *ChannelSyncService) fail(logger *slog.Logger, status *domain.IngestionStatus, err error) (*domain.IngestionStatus, error) {
	status.AddError("", err.Error())
	status.Fail()
	logger.Error("channel sync failed", "error", err)
	return status, err
}
