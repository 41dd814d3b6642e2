package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"cinema-api/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrBrokerUnavailable is returned without dialing while the publisher backs
// off after a failed connection attempt.
var ErrBrokerUnavailable = errors.New("message broker unavailable")

const (
	defaultDialTimeout    = 2 * time.Second
	defaultPublishTimeout = 3 * time.Second
)

// RabbitPublisher writes events as persistent JSON messages to a durable queue
// on the default exchange. The connection is opened lazily and dropped after
// any failure so a later publish redials.
type RabbitPublisher struct {
	url            string
	queue          string
	dialTimeout    time.Duration
	publishTimeout time.Duration
	retryBackoff   time.Duration
	log            *zap.Logger

	mu        sync.Mutex
	conn      *amqp.Connection
	ch        *amqp.Channel
	downUntil time.Time
}

func NewRabbitPublisher(cfg utils.BrokerConfig, log *zap.Logger) *RabbitPublisher {
	p := &RabbitPublisher{
		url:            cfg.URL,
		queue:          cfg.Queue,
		dialTimeout:    cfg.DialTimeout,
		publishTimeout: cfg.PublishTimeout,
		retryBackoff:   max(cfg.RetryBackoff, 0),
		log:            log.With(zap.String("component", "rabbitmq_publisher")),
	}
	if p.dialTimeout <= 0 {
		p.dialTimeout = defaultDialTimeout
	}
	if p.publishTimeout <= 0 {
		p.publishTimeout = defaultPublishTimeout
	}
	return p
}

// PublishOrderCreated runs after the order is committed, so it ignores the
// caller's cancellation and is bounded by the publish timeout instead.
func (p *RabbitPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         "order.created",
			MessageId:    event.OrderID,
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("publish order event: %w", err)
	}

	p.log.Debug("Order event published", zap.String("order_id", event.OrderID))
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn, p.ch = nil, nil
	return err
}

// channel must be called with mu held.
func (p *RabbitPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	if time.Now().Before(p.downUntil) {
		return nil, ErrBrokerUnavailable
	}

	conn, err := p.dial(ctx)
	if err != nil {
		p.downUntil = time.Now().Add(p.retryBackoff)
		p.log.Warn("RabbitMQ unreachable",
			zap.Error(err),
			zap.Duration("retry_in", p.retryBackoff),
		)
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn, p.ch = conn, ch
	p.log.Info("RabbitMQ connected", zap.String("queue", p.queue))
	return ch, nil
}

// dial bounds the TCP connect and the AMQP handshake by the dial timeout or
// the context deadline, whichever comes first.
func (p *RabbitPublisher) dial(ctx context.Context) (*amqp.Connection, error) {
	timeout := p.dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return nil, context.DeadlineExceeded
		}
		timeout = min(timeout, left)
	}

	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName("cinema-api")

	return amqp.DialConfig(p.url, amqp.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: props,
		Dial:       amqp.DefaultDial(timeout),
	})
}

func (p *RabbitPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}
