package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"sciencevideodb/internal/domain"
)

// RabbitMQ publishes video ingestion events for downstream indexing workers.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// NewRabbitMQ connects and declares a durable direct exchange with one
// durable queue bound to it.
func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	if cfg.Exchange == "" || cfg.RoutingKey == "" || cfg.QueueName == "" {
		return nil, errors.New("rabbitmq exchange, routing key and queue name are required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "publisher"),
	}, nil
}

func declareTopology(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// VideoEvent is the message body published for every stored video.
type VideoEvent struct {
	Action    string       `json:"action"` // "create" or "update"
	Video     VideoPayload `json:"video"`
	Timestamp time.Time    `json:"timestamp"`
}

type VideoPayload struct {
	ID                  string    `json:"id"`
	SourceID            string    `json:"sourceId"`
	Source              string    `json:"source"`
	Title               string    `json:"title"`
	Description         *string   `json:"description"`
	PublishedAt         time.Time `json:"publishedAt"`
	Duration            int       `json:"duration"`
	ChannelID           string    `json:"channelId"`
	ChannelName         string    `json:"channelName"`
	VideoURL            string    `json:"videoUrl"`
	Disciplines         []string  `json:"disciplines"`
	Tags                []string  `json:"tags"`
	TranscriptAvailable bool      `json:"transcriptAvailable"`
}

func newVideoPayload(v *domain.Video) VideoPayload {
	disciplines := make([]string, len(v.Disciplines))
	for i, d := range v.Disciplines {
		disciplines[i] = string(d)
	}
	return VideoPayload{
		ID:                  v.ID,
		SourceID:            v.SourceID,
		Source:              string(v.Source),
		Title:               v.Title,
		Description:         v.Description,
		PublishedAt:         v.PublishedAt,
		Duration:            v.Duration,
		ChannelID:           v.ChannelID,
		ChannelName:         v.ChannelName,
		VideoURL:            v.VideoURL,
		Disciplines:         disciplines,
		Tags:                v.Tags,
		TranscriptAvailable: v.TranscriptAvailable,
	}
}

// Publish sends a persistent create or update event for the video.
func (r *RabbitMQ) Publish(ctx context.Context, video *domain.Video, isNew bool) error {
	action := "update"
	if isNew {
		action = "create"
	}

	msg := VideoEvent{
		Action:    action,
		Video:     newVideoPayload(video),
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         "video." + action,
			MessageId:    video.ID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published video event",
		"video_id", video.SourceID,
		"action", action,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
