// Package mail provides the outbound mail collaborator.  Handlers and
// resolvers depend only on the Sender interface; the production
// implementation publishes to RabbitMQ and a background consumer does the
// actual delivery.
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/storefront/internal/queue"
)

// Sender sends one HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// QueueSender publishes mail to the durable mail.outbound queue.  Each
// call opens its own connection, so a broker outage only affects the
// request that is sending.
type QueueSender struct {
	url    string
	from   string
	logger *slog.Logger
	now    func() time.Time
}

// NewQueueSender returns a QueueSender publishing to the broker at url
// with the given From address.
func NewQueueSender(url, from string, logger *slog.Logger) *QueueSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueueSender{url: url, from: from, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Send publishes the message as persistent JSON.  Errors are logged and
// returned so the caller can decide whether they matter.
func (s *QueueSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg, pub, err := s.publishing(to, subject, htmlBody)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(s.url)
	if err != nil {
		s.logger.ErrorContext(ctx, "rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		s.logger.ErrorContext(ctx, "rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.MailQueueName, // name
		true,                // durable
		false,               // autoDelete
		false,               // exclusive
		false,               // noWait
		nil,                 // args
	); err != nil {
		s.logger.ErrorContext(ctx, "rabbitmq: queue declare failed", "err", err)
		return err
	}

	if err := ch.PublishWithContext(ctx,
		"",                  // default exchange
		queue.MailQueueName, // routing key = queue name
		false,               // mandatory
		false,               // immediate
		pub,
	); err != nil {
		s.logger.ErrorContext(ctx, "rabbitmq: publish failed", "err", err)
		return err
	}
	s.logger.InfoContext(ctx, "mail queued", "mail_id", msg.ID, "subject", subject)
	return nil
}

func (s *QueueSender) publishing(to, subject, htmlBody string) (queue.MailMessage, amqp.Publishing, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return queue.MailMessage{}, amqp.Publishing{}, fmt.Errorf("mail: empty recipient")
	}
	msg := queue.MailMessage{
		ID:        uuid.NewString(),
		From:      s.from,
		To:        to,
		Subject:   subject,
		HTML:      htmlBody,
		CreatedAt: s.now(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return queue.MailMessage{}, amqp.Publishing{}, fmt.Errorf("mail: marshal: %w", err)
	}
	return msg, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    msg.ID,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	}, nil
}
