// This file contains the implementation of EventService. This service handles the communication
// between the web server and an AMQP 0.9.1 message broker. User lifecycle events (registration,
// deletion) are published to a durable queue so downstream consumers (mailers, analytics) can
// react without the web server knowing about them.
//
// The service expects a RabbitMQ broker at the configured URL and will retry the initial
// connection for a short window before giving up. Publishing is fire-and-forget from the
// caller's point of view; a broker outage never fails an HTTP request.

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/UserHive/go-user-server/internal/log"
	"github.com/UserHive/go-user-server/internal/models/user"
)

const eventQueue = "user-events"

const (
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
)

// UserEvent is the payload published for every user lifecycle change.
type UserEvent struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	At     time.Time `json:"at"`
}

type EventService struct {
	url        string
	connection *amqp.Connection
	channel    *amqp.Channel
	logger     *log.Logger
}

// NewEventService connects to the message broker and declares the event queue.
func NewEventService(url string, logger *log.Logger) (*EventService, error) {
	service := &EventService{
		url:    url,
		logger: logger,
	}

	if err := service.connect(); err != nil {
		return nil, err
	}

	return service, nil
}

// connect establishes a connection to the AMQP message broker and declares the queue.
// The broker may still be starting up alongside us, so dialing retries for a short window.
func (s *EventService) connect() error {
	timeout := time.Now().Add(time.Minute / 4)
	var err error

	for time.Now().Before(timeout) {
		s.connection, err = amqp.Dial(s.url)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	s.channel, err = s.connection.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = s.channel.QueueDeclare(
		eventQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	return nil
}

// Publish sends a lifecycle event for the given user to the event queue.
func (s *EventService) Publish(ctx context.Context, eventType string, u *user.User) error {
	event := UserEvent{
		ID:     uuid.NewString(),
		Type:   eventType,
		UserID: u.ID.Hex(),
		Email:  u.Email,
		At:     time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx,
		"",         // default exchange
		eventQueue, // routing key = queue name
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.At,
			Body:         body,
		})
	if err != nil {
		return err
	}

	s.logger.Infof("Published %s event %s", eventType, event.ID)
	return nil
}

// Close shuts down the channel and connection.
func (s *EventService) Close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.connection != nil {
		s.connection.Close()
	}
}
