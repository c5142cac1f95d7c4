package domain

import "time"

// Video is the canonical record of one ingested video.
type Video struct {
	ID                  string
	SourceID            string // platform-specific video id
	Source              Source
	Title               string
	Description         *string
	PublishedAt         time.Time
	Duration            int // seconds
	ViewCount           *int64
	ChannelID           string
	ChannelName         string
	ChannelURL          *string
	ThumbnailURL        *string
	VideoURL            string
	Disciplines         []Discipline
	Tags                []string
	TranscriptAvailable bool
	EmbeddingID         *string
	SearchIndexID       *string
	Metadata            map[string]any
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PlatformVideo is a video summary as returned by the platform client,
// before canonicalization.
type PlatformVideo struct {
	ID           string
	Title        string
	Description  string
	PublishedAt  time.Time
	Duration     int
	ViewCount    int64
	ThumbnailURL string
	ChannelID    string
	ChannelTitle string
	Tags         []string
}

// TranscriptSegment is a timed slice of a video's caption text.
type TranscriptSegment struct {
	ID         string
	VideoID    string
	Text       string
	StartTime  float64
	EndTime    float64
	Confidence *float64
}

// CaptionEntry is one caption line from transcript extraction.
// Start and Duration are in seconds.
type CaptionEntry struct {
	Text     string
	Start    float64
	Duration float64
}
