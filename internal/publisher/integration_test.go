//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"nytviewer/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange",
		RoutingKey: "test-routing-key",
		QueueName:  "test-queue",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishBatch() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-batch",
		RoutingKey: "test-routing-key-batch",
		QueueName:  "test-queue-batch",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	published := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	articles := []domain.Article{
		{URI: "nyt://article/1", URL: "https://example.com/1", Title: "First", PublishedDate: published},
		{URI: "nyt://article/2", URL: "https://example.com/2", Title: "Second", PublishedDate: published},
	}

	err = pub.Publish(s.ctx, "arts", articles)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received ListFetchedMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("arts", received.ListID)
	s.Equal(2, received.Count)
	s.Require().Len(received.Articles, 2)
	s.Equal("nyt://article/1", received.Articles[0].URI)
	s.True(published.Equal(received.Articles[1].PublishedDate))
	s.Equal(received.ID, msg.MessageId)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_MessageFormat() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-format",
		RoutingKey: "test-routing-key-format",
		QueueName:  "test-queue-format",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.Publish(s.ctx, "popularViewed", []domain.Article{{URI: "u", Title: "T"}})
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	s.Equal("application/json", msg.ContentType)
	s.Equal("list.fetched", msg.Type)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
	s.False(msg.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_ConcurrentPublish() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-concurrent",
		RoutingKey: "test-routing-key-concurrent",
		QueueName:  "test-queue-concurrent",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(pub.Publish(s.ctx, "arts", []domain.Article{{URI: "u"}}))
		}()
	}
	wg.Wait()

	s.Len(s.consumeMessages(cfg, 5), 5)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	msgs := s.consumeMessages(cfg, 1)
	if len(msgs) == 0 {
		return nil
	}
	return &msgs[0]
}

func (s *RabbitMQIntegrationSuite) consumeMessages(cfg Config, n int) []amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	var received []amqp.Delivery
	timeout := time.After(5 * time.Second)
	for len(received) < n {
		select {
		case msg := <-msgs:
			received = append(received, msg)
		case <-timeout:
			s.Fail("Timeout waiting for message")
			return received
		}
	}
	return received
}
