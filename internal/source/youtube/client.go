package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"sciencevideodb/internal/domain"
)

const (
	// maxPageSize is the platform's per-call maximum for list endpoints
	// and for the number of ids in one videos.list call.
	maxPageSize = 50

	defaultMaxResults  = 50
	defaultMinInterval = 100 * time.Millisecond
)

// UploadsCache remembers the uploads playlist of each channel.
// Get returns "" with a nil error on a miss.
type UploadsCache interface {
	GetUploads(ctx context.Context, channelID string) (string, error)
	SetUploads(ctx context.Context, channelID, playlistID string) error
}

// Config holds YouTube client configuration.
type Config struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	MinInterval       time.Duration
	TranscriptBaseURL string
	TranscriptTimeout time.Duration
	Cache             UploadsCache
}

// Client talks to the YouTube Data API v3 and the public timedtext
// endpoint. All Data API calls share one pacing limiter.
type Client struct {
	svc         *yt.Service
	limiter     *rate.Limiter
	transcripts *transcriptFetcher
	cache       UploadsCache
	logger      *slog.Logger
}

// New creates a client. The API key travels as the key query parameter.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("youtube api key is required")
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultMinInterval
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &transport.APIKey{
			Key:       cfg.APIKey,
			Transport: http.DefaultTransport,
		},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	svc, err := yt.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{
		svc:         svc,
		limiter:     rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		transcripts: newTranscriptFetcher(cfg.TranscriptBaseURL, cfg.TranscriptTimeout),
		cache:       cfg.Cache,
		logger:      logger.With("source", string(domain.SourceYouTube)),
	}, nil
}

// wait blocks until the minimum spacing since the previous Data API
// request has elapsed.
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// FetchChannelInfo returns the channel's snippet and uploads playlist.
func (c *Client) FetchChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Channels.List([]string{"snippet", "contentDetails"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch channel info %s: %w", channelID, classify(err))
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, domain.ErrNotFound)
	}

	return decodeChannel(resp.Items[0])
}

// FetchChannelVideos returns up to maxResults videos from the channel's
// uploads, newest first. When publishedAfter is set, older videos are
// dropped and paging stops at the first page reaching past it.
func (c *Client) FetchChannelVideos(ctx context.Context, channelID string, publishedAfter *time.Time, maxResults int) ([]domain.PlatformVideo, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	playlistID, err := c.uploadsPlaylist(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("fetch channel videos: %w", err)
	}

	var videos []domain.PlatformVideo
	pageToken := ""

	for len(videos) < maxResults {
		page, err := c.fetchPlaylistPage(ctx, playlistID, pageToken, min(maxResults-len(videos), maxPageSize))
		if err != nil {
			return nil, fmt.Errorf("fetch channel videos: %w", err)
		}

		ids := page.videoIDs()
		if len(ids) == 0 {
			break
		}

		details, err := c.FetchVideoMetadataBatch(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("fetch channel videos: %w", err)
		}

		for _, v := range details {
			if publishedAfter == nil || !v.PublishedAt.Before(*publishedAfter) {
				videos = append(videos, v)
			}
		}

		c.logger.Debug("fetched playlist page",
			"channel_id", channelID,
			"items", len(ids),
			"total", len(videos),
		)

		if publishedAfter != nil {
			if oldest, ok := page.oldest(); ok && oldest.Before(*publishedAfter) {
				break
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	return videos, nil
}

func (c *Client) uploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	if c.cache != nil {
		id, err := c.cache.GetUploads(ctx, channelID)
		if err != nil {
			c.logger.Warn("uploads cache read failed", "channel_id", channelID, "error", err)
		} else if id != "" {
			return id, nil
		}
	}

	info, err := c.FetchChannelInfo(ctx, channelID)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.SetUploads(ctx, channelID, info.UploadsPlaylistID); err != nil {
			c.logger.Warn("uploads cache write failed", "channel_id", channelID, "error", err)
		}
	}
	return info.UploadsPlaylistID, nil
}

func (c *Client) fetchPlaylistPage(ctx context.Context, playlistID, pageToken string, pageSize int) (playlistPage, error) {
	if err := c.wait(ctx); err != nil {
		return playlistPage{}, err
	}

	call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(int64(pageSize)).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return playlistPage{}, fmt.Errorf("list playlist %s: %w", playlistID, classify(err))
	}
	return decodePlaylistPage(resp), nil
}

// FetchVideoMetadataBatch fetches full metadata for the given ids in
// sequential chunks of at most 50. Any failed chunk fails the whole call.
func (c *Client) FetchVideoMetadataBatch(ctx context.Context, videoIDs []string) ([]domain.PlatformVideo, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	videos := make([]domain.PlatformVideo, 0, len(videoIDs))
	for start := 0; start < len(videoIDs); start += maxPageSize {
		chunk := videoIDs[start:min(start+maxPageSize, len(videoIDs))]

		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(chunk...).
			MaxResults(int64(len(chunk))).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("fetch video metadata: %w", classify(err))
		}

		for _, item := range resp.Items {
			v, err := decodeVideo(item)
			if err != nil {
				c.logger.Warn("skipping malformed video item", "error", err)
				continue
			}
			videos = append(videos, v)
		}
	}

	return videos, nil
}

// FetchVideoMetadata fetches metadata for a single video.
func (c *Client) FetchVideoMetadata(ctx context.Context, videoID string) (*domain.PlatformVideo, error) {
	videos, err := c.FetchVideoMetadataBatch(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, domain.ErrNotFound)
	}
	return &videos[0], nil
}

// HasCaptions reports whether captions.list returns any track for the
// video. Every failure of that call yields false.
func (c *Client) HasCaptions(ctx context.Context, videoID string) bool {
	if err := c.wait(ctx); err != nil {
		return false
	}

	resp, err := c.svc.Captions.List([]string{"id"}, videoID).Context(ctx).Do()
	if err != nil {
		c.logger.Debug("captions check failed, assuming none", "video_id", videoID, "error", err)
		return false
	}
	return len(resp.Items) > 0
}

// FetchTranscriptWithTimestamps extracts the public caption track of a
// video. Failures wrap ErrTranscriptUnavailable; an empty slice with a nil
// error means the track exists but holds no captions.
func (c *Client) FetchTranscriptWithTimestamps(ctx context.Context, videoID, languageCode string) ([]domain.CaptionEntry, error) {
	return c.transcripts.fetch(ctx, videoID, languageCode)
}

// classify maps googleapi errors onto APIError so callers can match
// ErrQuotaExceeded. Transport errors pass through unchanged.
func classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	msg := gerr.Message
	if msg == "" {
		msg = http.StatusText(gerr.Code)
	}
	return &APIError{StatusCode: gerr.Code, Message: msg}
}
