package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"sciencevideodb/internal/domain"
)

type ChannelStore interface {
	GetChannelByChannelID(ctx context.Context, channelID string, source domain.Source) (*domain.Channel, error)
	UpdateChannelLastChecked(ctx context.Context, id string, lastVideoAt *time.Time) error
}

type VideoStore interface {
	GetVideoBySourceID(ctx context.Context, sourceID string, source domain.Source) (*domain.Video, error)
	UpsertVideo(ctx context.Context, video *domain.Video, channelInternalID string) (*domain.Video, error)
}

type TranscriptStore interface {
	InsertTranscriptSegments(ctx context.Context, videoID string, segments []domain.TranscriptSegment) ([]domain.TranscriptSegment, error)
}

// VideoSource is the platform side of a channel sync.
type VideoSource interface {
	FetchChannelVideos(ctx context.Context, channelID string, publishedAfter *time.Time, maxResults int) ([]domain.PlatformVideo, error)
	HasCaptions(ctx context.Context, videoID string) bool
	FetchTranscriptWithTimestamps(ctx context.Context, videoID, languageCode string) ([]domain.CaptionEntry, error)
}

type Publisher interface {
	Publish(ctx context.Context, video *domain.Video, isNew bool) error
}
