package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sciencevideodb/internal/domain"
)

type ChannelStore struct {
	db *sqlx.DB
}

func NewChannelStore(db *sqlx.DB) *ChannelStore {
	return &ChannelStore{db: db}
}

// GetChannelsDueForUpdate returns active channels that were never checked or
// whose last check is older than their cadence threshold, highest priority
// first and least recently checked first within a priority.
func (s *ChannelStore) GetChannelsDueForUpdate(ctx context.Context) ([]domain.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		WHERE is_active
		  AND (
			last_checked_at IS NULL
			OR (update_cadence = 'hourly' AND last_checked_at < NOW() - INTERVAL '1 hour')
			OR (update_cadence = 'daily' AND last_checked_at < NOW() - INTERVAL '1 day')
			OR (update_cadence = 'weekly' AND last_checked_at < NOW() - INTERVAL '1 week')
		  )
		ORDER BY priority DESC, last_checked_at ASC NULLS FIRST`

	return s.selectChannels(ctx, query)
}

func (s *ChannelStore) ListActiveChannels(ctx context.Context) ([]domain.Channel, error) {
	query := `
		SELECT ` + channelColumns + `
		FROM channels
		WHERE is_active
		ORDER BY priority DESC, channel_name ASC`

	return s.selectChannels(ctx, query)
}

func (s *ChannelStore) GetChannelByID(ctx context.Context, id string) (*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`
	return s.getChannel(ctx, query, id)
}

func (s *ChannelStore) GetChannelByChannelID(ctx context.Context, channelID string, source domain.Source) (*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE channel_id = $1 AND source = $2`
	return s.getChannel(ctx, query, channelID, source)
}

// CreateChannel registers a channel. Invalid channels are rejected with
// domain.ErrInvalidInput; a duplicate (channel_id, source) with
// domain.ErrAlreadyExists.
func (s *ChannelStore) CreateChannel(ctx context.Context, ch *domain.Channel) (*domain.Channel, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	metadata, err := encodeMetadata(ch.Metadata)
	if err != nil {
		return nil, err
	}
	tags := ch.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		INSERT INTO channels (
			id, channel_id, channel_name, channel_url, source, disciplines,
			priority, update_cadence, is_active, tags, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + channelColumns

	var row channelRow
	err = sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query,
		uuid.NewString(),
		ch.ChannelID,
		ch.ChannelName,
		ch.ChannelURL,
		ch.Source,
		fromDisciplines(ch.Disciplines),
		ch.Priority,
		ch.UpdateCadence,
		ch.IsActive,
		pq.StringArray(tags),
		metadata,
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("channel %s/%s: %w", ch.Source, ch.ChannelID, domain.ErrAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("insert channel: %w", err)
	}
	return row.toDomain()
}

// UpdateChannel applies the non-nil fields of upd. An empty update returns
// the channel unchanged.
func (s *ChannelStore) UpdateChannel(ctx context.Context, id string, upd domain.ChannelUpdate) (*domain.Channel, error) {
	if upd.IsEmpty() {
		return s.GetChannelByID(ctx, id)
	}
	if upd.UpdateCadence != nil && !upd.UpdateCadence.Valid() {
		return nil, fmt.Errorf("%w: unknown update cadence %q", domain.ErrInvalidInput, *upd.UpdateCadence)
	}

	var sets []string
	args := []any{id}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if upd.Priority != nil {
		set("priority", *upd.Priority)
	}
	if upd.UpdateCadence != nil {
		set("update_cadence", *upd.UpdateCadence)
	}
	if upd.IsActive != nil {
		set("is_active", *upd.IsActive)
	}
	if upd.Tags != nil {
		set("tags", pq.StringArray(upd.Tags))
	}
	if upd.Metadata != nil {
		metadata, err := encodeMetadata(upd.Metadata)
		if err != nil {
			return nil, err
		}
		set("metadata", metadata)
	}

	query := `
		UPDATE channels
		SET ` + strings.Join(sets, ", ") + `, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + channelColumns

	var row channelRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("channel %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update channel: %w", err)
	}
	return row.toDomain()
}

// UpdateChannelLastChecked stamps last_checked_at with the database clock.
// last_video_at only moves forward; a nil lastVideoAt leaves it unchanged.
func (s *ChannelStore) UpdateChannelLastChecked(ctx context.Context, id string, lastVideoAt *time.Time) error {
	query := `
		UPDATE channels
		SET last_checked_at = NOW(),
			last_video_at = GREATEST(last_video_at, $2::timestamptz),
			updated_at = NOW()
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, lastVideoAt)
	if err != nil {
		return fmt.Errorf("update channel last checked: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update channel last checked: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("channel %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *ChannelStore) getChannel(ctx context.Context, query string, args ...any) (*domain.Channel, error) {
	var row channelRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("channel %v: %w", args[0], domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get channel: %w", err)
	}
	return row.toDomain()
}

func (s *ChannelStore) selectChannels(ctx context.Context, query string, args ...any) ([]domain.Channel, error) {
	var rows []channelRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select channels: %w", err)
	}

	channels := make([]domain.Channel, 0, len(rows))
	for i := range rows {
		ch, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		channels = append(channels, *ch)
	}
	return channels, nil
}
