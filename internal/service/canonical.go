package service

import (
	"sciencevideodb/internal/domain"
	"sciencevideodb/internal/source/youtube"
)

// canonicalVideo maps a platform video onto the stored record. Disciplines
// always come from the channel; the channel's tags replace the platform's
// when it has any.
func canonicalVideo(pv *domain.PlatformVideo, ch *domain.Channel, hasCaptions bool) *domain.Video {
	tags := pv.Tags
	if len(ch.Tags) > 0 {
		tags = ch.Tags
	}
	if tags == nil {
		tags = []string{}
	}

	return &domain.Video{
		SourceID:            pv.ID,
		Source:              domain.SourceYouTube,
		Title:               pv.Title,
		Description:         optional(pv.Description),
		PublishedAt:         pv.PublishedAt,
		Duration:            pv.Duration,
		ViewCount:           optional(pv.ViewCount),
		ChannelID:           ch.ID,
		ChannelName:         ch.ChannelName,
		ThumbnailURL:        optional(pv.ThumbnailURL),
		VideoURL:            youtube.VideoURL(pv.ID),
		Disciplines:         ch.Disciplines,
		Tags:                tags,
		TranscriptAvailable: hasCaptions,
		Metadata: map[string]any{
			"youtube": map[string]any{
				"id":           pv.ID,
				"channelId":    pv.ChannelID,
				"channelTitle": pv.ChannelTitle,
			},
		},
	}
}

// segmentsFromCaptions turns caption entries into transcript segments ending
// at start + duration. Negative durations collapse to zero length.
func segmentsFromCaptions(videoID string, entries []domain.CaptionEntry) []domain.TranscriptSegment {
	segments := make([]domain.TranscriptSegment, len(entries))
	for i, e := range entries {
		segments[i] = domain.TranscriptSegment{
			VideoID:   videoID,
			Text:      e.Text,
			StartTime: e.Start,
			EndTime:   max(e.Start, e.Start+e.Duration),
		}
	}
	return segments
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
