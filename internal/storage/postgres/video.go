package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sciencevideodb/internal/domain"
)

type VideoStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db, tm: NewTransactionManager(db)}
}

// UpsertVideo inserts or updates a video keyed by (source_id, source) in a
// single transaction. An empty channelInternalID resolves the owning channel
// from video.ChannelID, which is then the platform channel id. The returned
// record carries the channel name and URL.
func (s *VideoStore) UpsertVideo(ctx context.Context, video *domain.Video, channelInternalID string) (*domain.Video, error) {
	var result *domain.Video

	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, s.db)

		if channelInternalID == "" {
			err := sqlx.GetContext(ctx, exec, &channelInternalID,
				"SELECT id FROM channels WHERE channel_id = $1 AND source = $2",
				video.ChannelID, video.Source,
			)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("channel %s: %w", video.ChannelID, domain.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("resolve channel: %w", err)
			}
		}

		metadata, err := encodeMetadata(video.Metadata)
		if err != nil {
			return err
		}
		tags := video.Tags
		if tags == nil {
			tags = []string{}
		}

		var id string
		err = sqlx.GetContext(ctx, exec, &id,
			"SELECT id FROM videos WHERE source_id = $1 AND source = $2",
			video.SourceID, video.Source,
		)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			id = uuid.NewString()
			_, err = exec.ExecContext(ctx, `
				INSERT INTO videos (
					id, source_id, source, title, description, published_at, duration,
					view_count, channel_id, thumbnail_url, video_url, disciplines, tags,
					transcript_available, embedding_id, search_index_id, metadata
				) VALUES (
					$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
				)`,
				id,
				video.SourceID,
				video.Source,
				video.Title,
				video.Description,
				video.PublishedAt,
				video.Duration,
				video.ViewCount,
				channelInternalID,
				video.ThumbnailURL,
				video.VideoURL,
				fromDisciplines(video.Disciplines),
				pq.StringArray(tags),
				video.TranscriptAvailable,
				video.EmbeddingID,
				video.SearchIndexID,
				metadata,
			)
			if err != nil {
				return fmt.Errorf("insert video: %w", err)
			}
		case err != nil:
			return fmt.Errorf("lookup video: %w", err)
		default:
			_, err = exec.ExecContext(ctx, `
				UPDATE videos SET
					title = $2,
					description = $3,
					published_at = $4,
					duration = $5,
					view_count = $6,
					channel_id = $7,
					thumbnail_url = $8,
					video_url = $9,
					disciplines = $10,
					tags = $11,
					transcript_available = $12,
					embedding_id = $13,
					search_index_id = $14,
					metadata = $15,
					updated_at = NOW()
				WHERE id = $1`,
				id,
				video.Title,
				video.Description,
				video.PublishedAt,
				video.Duration,
				video.ViewCount,
				channelInternalID,
				video.ThumbnailURL,
				video.VideoURL,
				fromDisciplines(video.Disciplines),
				pq.StringArray(tags),
				video.TranscriptAvailable,
				video.EmbeddingID,
				video.SearchIndexID,
				metadata,
			)
			if err != nil {
				return fmt.Errorf("update video: %w", err)
			}
		}

		var row videoRow
		if err := sqlx.GetContext(ctx, exec, &row, videoSelect+" WHERE v.id = $1", id); err != nil {
			return fmt.Errorf("read back video: %w", err)
		}
		result, err = row.toDomain()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upsert video %s: %w", video.SourceID, err)
	}

	return result, nil
}

func (s *VideoStore) GetVideoByID(ctx context.Context, id string) (*domain.Video, error) {
	return s.getVideo(ctx, videoSelect+" WHERE v.id = $1", id)
}

func (s *VideoStore) GetVideoBySourceID(ctx context.Context, sourceID string, source domain.Source) (*domain.Video, error) {
	return s.getVideo(ctx, videoSelect+" WHERE v.source_id = $1 AND v.source = $2", sourceID, source)
}

// ListVideosByChannel lists a channel's videos by platform channel id,
// newest first.
func (s *VideoStore) ListVideosByChannel(ctx context.Context, channelID string, limit, offset int) ([]domain.Video, error) {
	query := videoSelect + `
		WHERE c.channel_id = $1
		ORDER BY v.published_at DESC
		LIMIT $2 OFFSET $3`

	return s.selectVideos(ctx, query, channelID, limit, offset)
}

func (s *VideoStore) ListVideosByDiscipline(ctx context.Context, discipline domain.Discipline, limit, offset int) ([]domain.Video, error) {
	query := videoSelect + `
		WHERE $1 = ANY(v.disciplines)
		ORDER BY v.published_at DESC
		LIMIT $2 OFFSET $3`

	return s.selectVideos(ctx, query, discipline, limit, offset)
}

// ListRecentVideosByDiscipline lists videos of a discipline published within
// the last days days, newest first.
func (s *VideoStore) ListRecentVideosByDiscipline(ctx context.Context, discipline domain.Discipline, days, limit int) ([]domain.Video, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", domain.ErrInvalidInput)
	}

	query := videoSelect + `
		WHERE $1 = ANY(v.disciplines)
		  AND v.published_at >= NOW() - make_interval(days => $2)
		ORDER BY v.published_at DESC
		LIMIT $3`

	return s.selectVideos(ctx, query, discipline, days, limit)
}

func (s *VideoStore) getVideo(ctx context.Context, query string, args ...any) (*domain.Video, error) {
	var row videoRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("video %v: %w", args[0], domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return row.toDomain()
}

func (s *VideoStore) selectVideos(ctx context.Context, query string, args ...any) ([]domain.Video, error) {
	var rows []videoRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select videos: %w", err)
	}
	return toVideos(rows)
}
