package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Deliverer hands a queued message to the actual mail transport.
type Deliverer interface {
	Deliver(ctx context.Context, msg MailMessage) error
}

// StartMailConsumer connects to RabbitMQ, declares the mail.outbound queue
// (durable) and passes every message to d.  It runs a reconnect loop with
// exponential backoff and returns only when ctx is cancelled.  A message
// that cannot be decoded or delivered is logged and rejected without
// requeue so one bad message cannot stall the queue.
func StartMailConsumer(ctx context.Context, url string, d Deliverer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("mail-consumer: failed to dial broker", "err", err, "retry_in", backoff)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, d, logger)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("mail-consumer: consume loop ended; reconnecting", "err", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, d Deliverer, logger *slog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		logger.Warn("mail-consumer: set QoS failed", "err", err)
	}

	if _, err := ch.QueueDeclare(MailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(MailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case dlv, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(ctx, dlv.Body, d); err != nil {
				logger.Error("mail-consumer: handle message failed", "err", err)
				_ = dlv.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = dlv.Ack(false)
		}
	}
}

func handleMessage(ctx context.Context, body []byte, d Deliverer) error {
	var msg MailMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("message without recipient")
	}
	if err := d.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("deliver %s: %w", msg.ID, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// OutboxDeliverer appends each message to <Dir>/mail.log instead of
// talking to an SMTP server.  It is the delivery used in development and
// by environments where a separate relay tails the outbox.
type OutboxDeliverer struct {
	Dir string

	mu sync.Mutex
}

func (o *OutboxDeliverer) Deliver(_ context.Context, msg MailMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	dir := o.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir outbox: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "mail.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open outbox: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] mail | id=%s | from=%s | to=%s | subject=%q | html=%q\n",
		msg.CreatedAt.UTC().Format(time.RFC3339), msg.ID, msg.From, msg.To, msg.Subject, msg.HTML)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write outbox: %w", err)
	}
	return nil
}
