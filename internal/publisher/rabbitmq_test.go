package publisher

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sciencevideodb/internal/domain"
)

func TestNewRabbitMQ_RequiresTopology(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewRabbitMQ(Config{URL: "amqp://localhost:5672/"}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestVideoEvent_WireFormat(t *testing.T) {
	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	desc := "Why the sky is blue"
	video := &domain.Video{
		ID:          "0b8f",
		SourceID:    "abc123",
		Source:      domain.SourceYouTube,
		Title:       "Rayleigh scattering",
		Description: &desc,
		PublishedAt: published,
		Duration:    420,
		ChannelID:   "ch-1",
		ChannelName: "MinutePhysics",
		VideoURL:    "https://www.youtube.com/watch?v=abc123",
		Disciplines: []domain.Discipline{domain.DisciplinePhysics},
		Tags:        []string{"optics"},
	}

	body, err := json.Marshal(VideoEvent{Action: "create", Video: newVideoPayload(video), Timestamp: published})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "create", decoded["action"])

	v, ok := decoded["video"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc123", v["sourceId"])
	assert.Equal(t, "youtube", v["source"])
	assert.Equal(t, []any{"physics"}, v["disciplines"])
	assert.Equal(t, "2024-01-02T03:04:05Z", v["publishedAt"])
	assert.Equal(t, false, v["transcriptAvailable"])
}
