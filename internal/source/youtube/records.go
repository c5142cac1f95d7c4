package youtube

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	yt "google.golang.org/api/youtube/v3"

	"sciencevideodb/internal/domain"
)

// ChannelInfo is the validated subset of a channels.list item.
type ChannelInfo struct {
	ID                string
	Title             string
	Description       string
	ThumbnailURL      string
	UploadsPlaylistID string
}

// playlistEntry is the validated subset of a playlistItems.list item.
type playlistEntry struct {
	VideoID     string
	PublishedAt time.Time // zero when the platform omits it
}

type playlistPage struct {
	Entries       []playlistEntry
	NextPageToken string
}

func (p playlistPage) videoIDs() []string {
	ids := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		ids = append(ids, e.VideoID)
	}
	return ids
}

// oldest returns the publish time of the last dated entry on the page.
// The platform lists uploads newest first.
func (p playlistPage) oldest() (time.Time, bool) {
	for i := len(p.Entries) - 1; i >= 0; i-- {
		if !p.Entries[i].PublishedAt.IsZero() {
			return p.Entries[i].PublishedAt, true
		}
	}
	return time.Time{}, false
}

func decodeChannel(item *yt.Channel) (*ChannelInfo, error) {
	if item.Snippet == nil {
		return nil, fmt.Errorf("%w: channel %s has no snippet", ErrMalformedResponse, item.Id)
	}
	if item.ContentDetails == nil || item.ContentDetails.RelatedPlaylists == nil ||
		item.ContentDetails.RelatedPlaylists.Uploads == "" {
		return nil, fmt.Errorf("%w: channel %s has no uploads playlist", ErrMalformedResponse, item.Id)
	}

	info := &ChannelInfo{
		ID:                item.Id,
		Title:             item.Snippet.Title,
		Description:       item.Snippet.Description,
		UploadsPlaylistID: item.ContentDetails.RelatedPlaylists.Uploads,
	}
	if t := item.Snippet.Thumbnails; t != nil {
		info.ThumbnailURL = firstURL(t.High, t.Medium, t.Default)
	}
	return info, nil
}

func decodePlaylistPage(resp *yt.PlaylistItemListResponse) playlistPage {
	page := playlistPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		var entry playlistEntry
		if item.ContentDetails != nil {
			entry.VideoID = item.ContentDetails.VideoId
			entry.PublishedAt = parseTime(item.ContentDetails.VideoPublishedAt)
		}
		if item.Snippet != nil {
			if entry.VideoID == "" && item.Snippet.ResourceId != nil {
				entry.VideoID = item.Snippet.ResourceId.VideoId
			}
			if entry.PublishedAt.IsZero() {
				entry.PublishedAt = parseTime(item.Snippet.PublishedAt)
			}
		}
		if entry.VideoID == "" {
			continue
		}
		page.Entries = append(page.Entries, entry)
	}
	return page
}

func decodeVideo(item *yt.Video) (domain.PlatformVideo, error) {
	if item.Id == "" || item.Snippet == nil {
		return domain.PlatformVideo{}, fmt.Errorf("%w: video item without id or snippet", ErrMalformedResponse)
	}
	publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return domain.PlatformVideo{}, fmt.Errorf("%w: video %s publishedAt %q", ErrMalformedResponse, item.Id, item.Snippet.PublishedAt)
	}

	v := domain.PlatformVideo{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		PublishedAt:  publishedAt,
		ChannelID:    item.Snippet.ChannelId,
		ChannelTitle: item.Snippet.ChannelTitle,
		Tags:         item.Snippet.Tags,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if t := item.Snippet.Thumbnails; t != nil {
		v.ThumbnailURL = firstURL(t.Maxres, t.Standard, t.High, t.Medium, t.Default)
	}
	if item.ContentDetails != nil {
		v.Duration = ParseDuration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		v.ViewCount = int64(item.Statistics.ViewCount)
	}
	return v, nil
}

func firstURL(thumbs ...*yt.Thumbnail) string {
	for _, t := range thumbs {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

var durationRegex = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO-8601 duration such as PT1H2M3S to whole
// seconds. Strings without matching groups yield 0.
func ParseDuration(s string) int {
	m := durationRegex.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	seconds := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		seconds += n * mult
	}
	return seconds
}

func VideoURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func ChannelURL(channelID string) string {
	return "https://www.youtube.com/channel/" + channelID
}
