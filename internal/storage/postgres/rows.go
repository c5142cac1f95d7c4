package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"sciencevideodb/internal/domain"
)

const channelColumns = `
	id, channel_id, channel_name, channel_url, source, disciplines, priority,
	update_cadence, is_active, last_checked_at, last_video_at, tags, metadata,
	created_at, updated_at`

type channelRow struct {
	ID            string         `db:"id"`
	ChannelID     string         `db:"channel_id"`
	ChannelName   string         `db:"channel_name"`
	ChannelURL    string         `db:"channel_url"`
	Source        string         `db:"source"`
	Disciplines   pq.StringArray `db:"disciplines"`
	Priority      int            `db:"priority"`
	UpdateCadence string         `db:"update_cadence"`
	IsActive      bool           `db:"is_active"`
	LastCheckedAt *time.Time     `db:"last_checked_at"`
	LastVideoAt   *time.Time     `db:"last_video_at"`
	Tags          pq.StringArray `db:"tags"`
	Metadata      types.JSONText `db:"metadata"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r *channelRow) toDomain() (*domain.Channel, error) {
	metadata, err := decodeMetadata(r.Metadata)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", r.ID, err)
	}
	return &domain.Channel{
		ID:            r.ID,
		ChannelID:     r.ChannelID,
		ChannelName:   r.ChannelName,
		ChannelURL:    r.ChannelURL,
		Source:        domain.Source(r.Source),
		Disciplines:   toDisciplines(r.Disciplines),
		Priority:      r.Priority,
		UpdateCadence: domain.Cadence(r.UpdateCadence),
		IsActive:      r.IsActive,
		LastCheckedAt: r.LastCheckedAt,
		LastVideoAt:   r.LastVideoAt,
		Tags:          nonNil(r.Tags),
		Metadata:      metadata,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// videoSelect reads videos joined with their owning channel.
const videoSelect = `
	SELECT
		v.id, v.source_id, v.source, v.title, v.description, v.published_at,
		v.duration, v.view_count, v.channel_id, c.channel_name,
		NULLIF(c.channel_url, '') AS channel_url, v.thumbnail_url, v.video_url,
		v.disciplines, v.tags, v.transcript_available, v.embedding_id,
		v.search_index_id, v.metadata, v.created_at, v.updated_at
	FROM videos v
	INNER JOIN channels c ON c.id = v.channel_id`

type videoRow struct {
	ID                  string         `db:"id"`
	SourceID            string         `db:"source_id"`
	Source              string         `db:"source"`
	Title               string         `db:"title"`
	Description         *string        `db:"description"`
	PublishedAt         time.Time      `db:"published_at"`
	Duration            int            `db:"duration"`
	ViewCount           *int64         `db:"view_count"`
	ChannelID           string         `db:"channel_id"`
	ChannelName         string         `db:"channel_name"`
	ChannelURL          *string        `db:"channel_url"`
	ThumbnailURL        *string        `db:"thumbnail_url"`
	VideoURL            string         `db:"video_url"`
	Disciplines         pq.StringArray `db:"disciplines"`
	Tags                pq.StringArray `db:"tags"`
	TranscriptAvailable bool           `db:"transcript_available"`
	EmbeddingID         *string        `db:"embedding_id"`
	SearchIndexID       *string        `db:"search_index_id"`
	Metadata            types.JSONText `db:"metadata"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func (r *videoRow) toDomain() (*domain.Video, error) {
	metadata, err := decodeMetadata(r.Metadata)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", r.ID, err)
	}
	return &domain.Video{
		ID:                  r.ID,
		SourceID:            r.SourceID,
		Source:              domain.Source(r.Source),
		Title:               r.Title,
		Description:         r.Description,
		PublishedAt:         r.PublishedAt,
		Duration:            r.Duration,
		ViewCount:           r.ViewCount,
		ChannelID:           r.ChannelID,
		ChannelName:         r.ChannelName,
		ChannelURL:          r.ChannelURL,
		ThumbnailURL:        r.ThumbnailURL,
		VideoURL:            r.VideoURL,
		Disciplines:         toDisciplines(r.Disciplines),
		Tags:                nonNil(r.Tags),
		TranscriptAvailable: r.TranscriptAvailable,
		EmbeddingID:         r.EmbeddingID,
		SearchIndexID:       r.SearchIndexID,
		Metadata:            metadata,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}, nil
}

func toVideos(rows []videoRow) ([]domain.Video, error) {
	videos := make([]domain.Video, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, nil
}

type segmentRow struct {
	ID         string   `db:"id"`
	VideoID    string   `db:"video_id"`
	Text       string   `db:"text"`
	StartTime  float64  `db:"start_time"`
	EndTime    float64  `db:"end_time"`
	Confidence *float64 `db:"confidence"`
}

func toSegments(rows []segmentRow) []domain.TranscriptSegment {
	segments := make([]domain.TranscriptSegment, len(rows))
	for i, r := range rows {
		segments[i] = domain.TranscriptSegment(r)
	}
	return segments
}

func encodeMetadata(m map[string]any) (types.JSONText, error) {
	if m == nil {
		return types.JSONText("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return types.JSONText(b), nil
}

func decodeMetadata(raw types.JSONText) (map[string]any, error) {
	m := map[string]any{}
	if len(raw) == 0 {
		return m, nil
	}
	if err := raw.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return m, nil
}

func fromDisciplines(ds []domain.Discipline) pq.StringArray {
	out := make(pq.StringArray, len(ds))
	for i, d := range ds {
		out[i] = string(d)
	}
	return out
}

func toDisciplines(arr pq.StringArray) []domain.Discipline {
	out := make([]domain.Discipline, len(arr))
	for i, s := range arr {
		out[i] = domain.Discipline(s)
	}
	return out
}

func nonNil(arr pq.StringArray) []string {
	if arr == nil {
		return []string{}
	}
	return []string(arr)
}

// valuesList renders "($1, $2), ($3, $4)" for rows*cols positional parameters.
func valuesList(rows, cols int) string {
	var sb strings.Builder
	n := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(n))
			n++
		}
		sb.WriteString(")")
	}
	return sb.String()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
