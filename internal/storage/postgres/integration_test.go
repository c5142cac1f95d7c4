//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"sciencevideodb/internal/domain"
	"sciencevideodb/migrations"
)

func ptr[T any](v T) *T { return &v }

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB

	channels    *ChannelStore
	videos      *VideoStore
	transcripts *TranscriptStore
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(migrations.Run(db.DB))

	s.channels = NewChannelStore(db)
	s.videos = NewVideoStore(db)
	s.transcripts = NewTranscriptStore(db)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, "TRUNCATE transcript_segments, videos, channels")
	s.Require().NoError(err)
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) createChannel(channelID string, priority int, cadence domain.Cadence) *domain.Channel {
	ch, err := s.channels.CreateChannel(s.ctx, &domain.Channel{
		ChannelID:     channelID,
		ChannelName:   "Channel " + channelID,
		ChannelURL:    "https://www.youtube.com/channel/" + channelID,
		Source:        domain.SourceYouTube,
		Disciplines:   []domain.Discipline{domain.DisciplinePhysics},
		Priority:      priority,
		UpdateCadence: cadence,
		IsActive:      true,
		Tags:          []string{"lectures"},
		Metadata:      map[string]any{"region": "us"},
	})
	s.Require().NoError(err)
	return ch
}

func (s *PostgresIntegrationSuite) setLastChecked(id string, ago time.Duration) {
	_, err := s.db.ExecContext(s.ctx,
		"UPDATE channels SET last_checked_at = NOW() - make_interval(secs => $2) WHERE id = $1",
		id, ago.Seconds(),
	)
	s.Require().NoError(err)
}

func newVideo(sourceID string, published time.Time) *domain.Video {
	return &domain.Video{
		SourceID:     sourceID,
		Source:       domain.SourceYouTube,
		Title:        "Video " + sourceID,
		Description:  ptr("about " + sourceID),
		PublishedAt:  published,
		Duration:     600,
		ViewCount:    ptr(int64(42)),
		ThumbnailURL: ptr("https://img/" + sourceID + ".jpg"),
		VideoURL:     "https://www.youtube.com/watch?v=" + sourceID,
		Disciplines:  []domain.Discipline{domain.DisciplinePhysics},
		Tags:         []string{"optics"},
		Metadata:     map[string]any{"youtube": map[string]any{"id": sourceID}},
	}
}

func (s *PostgresIntegrationSuite) TestCreateChannel_RoundTrip() {
	ch := s.createChannel("UCone", 5, domain.CadenceDaily)

	s.NotEmpty(ch.ID)
	s.Nil(ch.LastCheckedAt)
	s.Equal([]domain.Discipline{domain.DisciplinePhysics}, ch.Disciplines)
	s.Equal(map[string]any{"region": "us"}, ch.Metadata)

	got, err := s.channels.GetChannelByChannelID(s.ctx, "UCone", domain.SourceYouTube)
	s.Require().NoError(err)
	s.Equal(ch.ID, got.ID)
}

func (s *PostgresIntegrationSuite) TestCreateChannel_Rejects() {
	_, err := s.channels.CreateChannel(s.ctx, &domain.Channel{
		ChannelID:     "UCbad",
		ChannelName:   "Bad",
		Source:        domain.SourceYouTube,
		UpdateCadence: domain.CadenceDaily,
	})
	s.ErrorIs(err, domain.ErrInvalidInput)

	s.createChannel("UCdup", 0, domain.CadenceDaily)
	_, err = s.channels.CreateChannel(s.ctx, &domain.Channel{
		ChannelID:     "UCdup",
		ChannelName:   "Dup",
		Source:        domain.SourceYouTube,
		Disciplines:   []domain.Discipline{domain.DisciplineBiology},
		UpdateCadence: domain.CadenceDaily,
	})
	s.ErrorIs(err, domain.ErrAlreadyExists)
}

func (s *PostgresIntegrationSuite) TestGetChannel_NotFound() {
	_, err := s.channels.GetChannelByChannelID(s.ctx, "UCnope", domain.SourceYouTube)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.channels.GetChannelByID(s.ctx, "00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestUpdateChannel() {
	ch := s.createChannel("UCupd", 1, domain.CadenceDaily)

	updated, err := s.channels.UpdateChannel(s.ctx, ch.ID, domain.ChannelUpdate{
		Priority:      ptr(9),
		UpdateCadence: ptr(domain.CadenceHourly),
		IsActive:      ptr(false),
	})
	s.Require().NoError(err)
	s.Equal(9, updated.Priority)
	s.Equal(domain.CadenceHourly, updated.UpdateCadence)
	s.False(updated.IsActive)
	s.Equal([]string{"lectures"}, updated.Tags)

	_, err = s.channels.UpdateChannel(s.ctx, ch.ID, domain.ChannelUpdate{UpdateCadence: ptr(domain.Cadence("monthly"))})
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = s.channels.UpdateChannel(s.ctx, "00000000-0000-0000-0000-000000000000", domain.ChannelUpdate{Priority: ptr(1)})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestGetChannelsDueForUpdate_Ordering() {
	a := s.createChannel("UCa", 10, domain.CadenceDaily)
	s.setLastChecked(a.ID, 2*time.Hour)

	b := s.createChannel("UCb", 10, domain.CadenceHourly)
	s.setLastChecked(b.ID, 2*time.Hour)

	c := s.createChannel("UCc", 5, domain.CadenceWeekly)
	_ = c

	hourly := s.createChannel("UCd", 20, domain.CadenceHourly)
	s.setLastChecked(hourly.ID, 30*time.Minute)

	inactive := s.createChannel("UCe", 50, domain.CadenceHourly)
	_, err := s.channels.UpdateChannel(s.ctx, inactive.ID, domain.ChannelUpdate{IsActive: ptr(false)})
	s.Require().NoError(err)

	due, err := s.channels.GetChannelsDueForUpdate(s.ctx)
	s.Require().NoError(err)

	ids := make([]string, len(due))
	for i, ch := range due {
		ids[i] = ch.ChannelID
	}
	s.Equal([]string{"UCb", "UCc"}, ids)
}

func (s *PostgresIntegrationSuite) TestGetChannelsDueForUpdate_NeverCheckedFirstWithinPriority() {
	checked := s.createChannel("UCchecked", 3, domain.CadenceHourly)
	s.setLastChecked(checked.ID, 3*time.Hour)
	s.createChannel("UCnew", 3, domain.CadenceHourly)

	older := s.createChannel("UColder", 3, domain.CadenceHourly)
	s.setLastChecked(older.ID, 5*time.Hour)

	due, err := s.channels.GetChannelsDueForUpdate(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(due, 3)
	s.Equal("UCnew", due[0].ChannelID)
	s.Equal("UColder", due[1].ChannelID)
	s.Equal("UCchecked", due[2].ChannelID)
}

func (s *PostgresIntegrationSuite) TestUpdateChannelLastChecked_NeverRegresses() {
	ch := s.createChannel("UCmono", 0, domain.CadenceDaily)
	t1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	t0 := t1.Add(-48 * time.Hour)

	s.Require().NoError(s.channels.UpdateChannelLastChecked(s.ctx, ch.ID, &t1))
	s.Require().NoError(s.channels.UpdateChannelLastChecked(s.ctx, ch.ID, &t0))
	s.Require().NoError(s.channels.UpdateChannelLastChecked(s.ctx, ch.ID, nil))

	got, err := s.channels.GetChannelByID(s.ctx, ch.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.LastVideoAt)
	s.True(got.LastVideoAt.Equal(t1))
	s.Require().NotNil(got.LastCheckedAt)
	s.WithinDuration(time.Now(), *got.LastCheckedAt, time.Minute)

	err = s.channels.UpdateChannelLastChecked(s.ctx, "00000000-0000-0000-0000-000000000000", nil)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestUpsertVideo_Idempotent() {
	ch := s.createChannel("UCvid", 0, domain.CadenceDaily)
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.videos.UpsertVideo(s.ctx, newVideo("abc", published), ch.ID)
	s.Require().NoError(err)
	s.Equal("Channel UCvid", first.ChannelName)
	s.Require().NotNil(first.ChannelURL)
	s.Equal("https://www.youtube.com/channel/UCvid", *first.ChannelURL)

	again := newVideo("abc", published)
	again.Title = "Renamed"
	again.TranscriptAvailable = true
	second, err := s.videos.UpsertVideo(s.ctx, again, ch.ID)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.True(first.CreatedAt.Equal(second.CreatedAt))
	s.Equal("Renamed", second.Title)
	s.True(second.TranscriptAvailable)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM videos WHERE source_id = 'abc'"))
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestUpsertVideo_ResolvesChannelByPlatformID() {
	ch := s.createChannel("UCresolve", 0, domain.CadenceDaily)

	v := newVideo("xyz", time.Now().UTC().Truncate(time.Second))
	v.ChannelID = "UCresolve"
	got, err := s.videos.UpsertVideo(s.ctx, v, "")
	s.Require().NoError(err)
	s.Equal(ch.ID, got.ChannelID)
}

func (s *PostgresIntegrationSuite) TestUpsertVideo_UnknownChannelLeavesNoRow() {
	v := newVideo("orphan", time.Now().UTC())
	v.ChannelID = "UCmissing"

	_, err := s.videos.UpsertVideo(s.ctx, v, "")
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.videos.GetVideoBySourceID(s.ctx, "orphan", domain.SourceYouTube)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestInsertTranscriptSegments_Replaces() {
	ch := s.createChannel("UCtr", 0, domain.CadenceDaily)
	video, err := s.videos.UpsertVideo(s.ctx, newVideo("tr1", time.Now().UTC()), ch.ID)
	s.Require().NoError(err)

	ten := make([]domain.TranscriptSegment, 10)
	for i := range ten {
		ten[i] = domain.TranscriptSegment{
			Text:      fmt.Sprintf("line %d", i),
			StartTime: float64(9-i) * 2,
			EndTime:   float64(9-i)*2 + 1.5,
		}
	}
	stored, err := s.transcripts.InsertTranscriptSegments(s.ctx, video.ID, ten)
	s.Require().NoError(err)
	s.Len(stored, 10)
	s.Equal(0.0, stored[0].StartTime)
	s.Equal("line 9", stored[0].Text)

	three := []domain.TranscriptSegment{
		{Text: "c", StartTime: 20, EndTime: 21},
		{Text: "a", StartTime: 0, EndTime: 5, Confidence: ptr(0.9)},
		{Text: "b", StartTime: 5, EndTime: 10},
	}
	stored, err = s.transcripts.InsertTranscriptSegments(s.ctx, video.ID, three)
	s.Require().NoError(err)
	s.Require().Len(stored, 3)
	s.Equal([]string{"a", "b", "c"}, []string{stored[0].Text, stored[1].Text, stored[2].Text})
	s.Require().NotNil(stored[0].Confidence)
	s.InDelta(0.9, *stored[0].Confidence, 1e-9)

	got, err := s.transcripts.GetTranscriptSegments(s.ctx, video.ID)
	s.Require().NoError(err)
	s.Len(got, 3)
}

// An empty replacement set still deletes the existing transcript.
func (s *PostgresIntegrationSuite) TestInsertTranscriptSegments_EmptyClears() {
	ch := s.createChannel("UCempty", 0, domain.CadenceDaily)
	video, err := s.videos.UpsertVideo(s.ctx, newVideo("tr2", time.Now().UTC()), ch.ID)
	s.Require().NoError(err)

	_, err = s.transcripts.InsertTranscriptSegments(s.ctx, video.ID, []domain.TranscriptSegment{{Text: "x", StartTime: 0, EndTime: 1}})
	s.Require().NoError(err)

	stored, err := s.transcripts.InsertTranscriptSegments(s.ctx, video.ID, nil)
	s.Require().NoError(err)
	s.Empty(stored)

	got, err := s.transcripts.GetTranscriptSegments(s.ctx, video.ID)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PostgresIntegrationSuite) TestInsertTranscriptSegments_FailureKeepsOldSet() {
	ch := s.createChannel("UCkeep", 0, domain.CadenceDaily)
	video, err := s.videos.UpsertVideo(s.ctx, newVideo("tr3", time.Now().UTC()), ch.ID)
	s.Require().NoError(err)

	_, err = s.transcripts.InsertTranscriptSegments(s.ctx, video.ID, []domain.TranscriptSegment{{Text: "keep", StartTime: 0, EndTime: 1}})
	s.Require().NoError(err)

	_, err = s.transcripts.InsertTranscriptSegments(s.ctx, video.ID, []domain.TranscriptSegment{{Text: "bad", StartTime: 5, EndTime: 1}})
	s.ErrorIs(err, domain.ErrInvalidInput)

	got, err := s.transcripts.GetTranscriptSegments(s.ctx, video.ID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("keep", got[0].Text)
}

func (s *PostgresIntegrationSuite) TestSearchTranscriptSegments() {
	ch := s.createChannel("UCsearch", 0, domain.CadenceDaily)
	video, err := s.videos.UpsertVideo(s.ctx, newVideo("tr4", time.Now().UTC()), ch.ID)
	s.Require().NoError(err)

	_, err = s.transcripts.InsertTranscriptSegments(s.ctx, video.ID, []domain.TranscriptSegment{
		{Text: "The Photon has no mass", StartTime: 0, EndTime: 2},
		{Text: "100% efficient", StartTime: 2, EndTime: 4},
		{Text: "1000 efficient", StartTime: 4, EndTime: 6},
	})
	s.Require().NoError(err)

	got, err := s.transcripts.SearchTranscriptSegments(s.ctx, "photon", 10)
	s.Require().NoError(err)
	s.Len(got, 1)

	got, err = s.transcripts.SearchTranscriptSegments(s.ctx, "100%", 10)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("100% efficient", got[0].Text)
}

func (s *PostgresIntegrationSuite) TestListVideos() {
	ch := s.createChannel("UClist", 0, domain.CadenceDaily)
	now := time.Now().UTC().Truncate(time.Second)

	recent := newVideo("recent", now.Add(-2*24*time.Hour))
	old := newVideo("old", now.Add(-40*24*time.Hour))
	bio := newVideo("bio", now.Add(-24*time.Hour))
	bio.Disciplines = []domain.Discipline{domain.DisciplineBiology}

	for _, v := range []*domain.Video{recent, old, bio} {
		_, err := s.videos.UpsertVideo(s.ctx, v, ch.ID)
		s.Require().NoError(err)
	}

	byChannel, err := s.videos.ListVideosByChannel(s.ctx, "UClist", 10, 0)
	s.Require().NoError(err)
	s.Len(byChannel, 3)
	s.Equal("bio", byChannel[0].SourceID)

	page, err := s.videos.ListVideosByChannel(s.ctx, "UClist", 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("recent", page[0].SourceID)

	physics, err := s.videos.ListVideosByDiscipline(s.ctx, domain.DisciplinePhysics, 10, 0)
	s.Require().NoError(err)
	s.Len(physics, 2)

	recentPhysics, err := s.videos.ListRecentVideosByDiscipline(s.ctx, domain.DisciplinePhysics, 7, 10)
	s.Require().NoError(err)
	s.Require().Len(recentPhysics, 1)
	s.Equal("recent", recentPhysics[0].SourceID)

	_, err = s.videos.ListRecentVideosByDiscipline(s.ctx, domain.DisciplinePhysics, -1, 10)
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	ch := s.createChannel("UCtx", 0, domain.CadenceDaily)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := s.videos.UpsertVideo(ctx, newVideo("rolled", time.Now().UTC()), ch.ID); err != nil {
			return err
		}
		return context.Canceled
	})
	s.ErrorIs(err, context.Canceled)

	_, err = s.videos.GetVideoBySourceID(s.ctx, "rolled", domain.SourceYouTube)
	s.ErrorIs(err, domain.ErrNotFound)
}
