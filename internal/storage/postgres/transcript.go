package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sciencevideodb/internal/domain"
)

const (
	segmentColumns = "id, video_id, text, start_time, end_time, confidence"
	segmentFields  = 6

	// segmentChunk keeps one INSERT under the postgres parameter limit.
	segmentChunk = 5000
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type TranscriptStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewTranscriptStore(db *sqlx.DB) *TranscriptStore {
	return &TranscriptStore{db: db, tm: NewTransactionManager(db)}
}

// InsertTranscriptSegments replaces every segment of the video with the given
// set in one transaction and returns the stored set ordered by start time.
// An empty set clears the video's transcript.
func (s *TranscriptStore) InsertTranscriptSegments(ctx context.Context, videoID string, segments []domain.TranscriptSegment) ([]domain.TranscriptSegment, error) {
	for _, seg := range segments {
		if seg.EndTime < seg.StartTime {
			return nil, fmt.Errorf("%w: segment ends at %.3f before it starts at %.3f", domain.ErrInvalidInput, seg.EndTime, seg.StartTime)
		}
	}

	var stored []domain.TranscriptSegment

	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, s.db)

		if _, err := exec.ExecContext(ctx, "DELETE FROM transcript_segments WHERE video_id = $1", videoID); err != nil {
			return fmt.Errorf("delete segments: %w", err)
		}

		for start := 0; start < len(segments); start += segmentChunk {
			chunk := segments[start:min(start+segmentChunk, len(segments))]

			args := make([]any, 0, len(chunk)*segmentFields)
			for _, seg := range chunk {
				args = append(args, uuid.NewString(), videoID, seg.Text, seg.StartTime, seg.EndTime, seg.Confidence)
			}

			query := "INSERT INTO transcript_segments (" + segmentColumns + ") VALUES " + valuesList(len(chunk), segmentFields)
			if _, err := exec.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert segments: %w", err)
			}
		}

		var err error
		stored, err = s.GetTranscriptSegments(ctx, videoID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("replace transcript of video %s: %w", videoID, err)
	}

	return stored, nil
}

func (s *TranscriptStore) GetTranscriptSegments(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	query := `
		SELECT ` + segmentColumns + `
		FROM transcript_segments
		WHERE video_id = $1
		ORDER BY start_time ASC`

	var rows []segmentRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, videoID); err != nil {
		return nil, fmt.Errorf("select segments: %w", err)
	}
	return toSegments(rows), nil
}

func (s *TranscriptStore) DeleteTranscriptSegments(ctx context.Context, videoID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM transcript_segments WHERE video_id = $1", videoID)
	if err != nil {
		return fmt.Errorf("delete segments: %w", err)
	}
	return nil
}

// SearchTranscriptSegments does a case-insensitive substring match on
// segment text. Wildcards in text match literally.
func (s *TranscriptStore) SearchTranscriptSegments(ctx context.Context, text string, limit int) ([]domain.TranscriptSegment, error) {
	query := `
		SELECT ` + segmentColumns + `
		FROM transcript_segments
		WHERE text ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY video_id, start_time
		LIMIT $2`

	var rows []segmentRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, likeEscaper.Replace(text), limit); err != nil {
		return nil, fmt.Errorf("search segments: %w", err)
	}
	return toSegments(rows), nil
}
