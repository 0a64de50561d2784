package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"nytviewer/internal/domain"
)

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger

	mu sync.Mutex
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger = logger.With("component", "publisher")
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
		logger:     logger,
	}, nil
}

// ListFetchedMessage announces one batch of articles fetched for a list.
type ListFetchedMessage struct {
	ID        string           `json:"id"`
	ListID    string           `json:"list_id"`
	Count     int              `json:"count"`
	Articles  []ArticleSummary `json:"articles"`
	Timestamp time.Time        `json:"timestamp"`
}

type ArticleSummary struct {
	URI           string    `json:"uri"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Byline        string    `json:"byline,omitempty"`
	Section       string    `json:"section,omitempty"`
	PublishedDate time.Time `json:"published_date"`
	ThumbnailURL  *string   `json:"thumbnail_url,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
}

func newListFetchedMessage(listID string, articles []domain.Article, now time.Time) ListFetchedMessage {
	summaries := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		summaries = append(summaries, ArticleSummary{
			URI:           a.URI,
			URL:           a.URL,
			Title:         a.Title,
			Byline:        a.Byline,
			Section:       a.Section,
			PublishedDate: a.PublishedDate,
			ThumbnailURL:  domain.SmallImageURL(a),
			ImageURL:      domain.LargeImageURL(a),
		})
	}

	return ListFetchedMessage{
		ID:        uuid.NewString(),
		ListID:    listID,
		Count:     len(summaries),
		Articles:  summaries,
		Timestamp: now.UTC(),
	}
}

func (r *RabbitMQ) Publish(ctx context.Context, listID string, articles []domain.Article) error {
	msg := newListFetchedMessage(listID, articles, time.Now())

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    msg.ID,
			Type:         "list.fetched",
			Body:         body,
			Timestamp:    msg.Timestamp,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published batch",
		"list", listID,
		"count", msg.Count,
		"message_id", msg.ID,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
