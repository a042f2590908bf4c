package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/middleware"
)

const (
	routingKeyPaymentCreated  = "payment.created"
	routingKeyPaymentReverted = "payment.reverted"

	publishTimeout = 5 * time.Second
)

// PaymentEvent is the wire form of a payment transition.
type PaymentEvent struct {
	PaymentID        string          `json:"paymentID"`
	CollaboratorID   string          `json:"collaboratorID"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	EntryIDs         []string        `json:"entryIDs"`
	RevertedEntryIDs []string        `json:"revertedEntryIDs,omitempty"`
	OccurredAt       time.Time       `json:"occurredAt"`
}

// AMQPPublisher publishes payment events to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

var _ Publisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

func (p *AMQPPublisher) PublishPaymentCreated(ctx context.Context, payment *domain.Payment) {
	p.publish(ctx, routingKeyPaymentCreated, PaymentEvent{
		PaymentID:      payment.PaymentID,
		CollaboratorID: payment.CollaboratorID,
		TotalAmount:    payment.TotalAmount,
		EntryIDs:       payment.EntryIDs,
		OccurredAt:     time.Now(),
	})
}

func (p *AMQPPublisher) PublishPaymentReverted(ctx context.Context, payment *domain.Payment, revertedEntryIDs []string) {
	p.publish(ctx, routingKeyPaymentReverted, PaymentEvent{
		PaymentID:        payment.PaymentID,
		CollaboratorID:   payment.CollaboratorID,
		TotalAmount:      payment.TotalAmount,
		EntryIDs:         payment.EntryIDs,
		RevertedEntryIDs: revertedEntryIDs,
		OccurredAt:       time.Now(),
	})
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, event PaymentEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal payment event", "error", err, "routingKey", routingKey)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		logger.Error("failed to publish payment event", "error", err, "routingKey", routingKey, "paymentID", event.PaymentID)
		return
	}

	logger.Info("published payment event", "routingKey", routingKey, "paymentID", event.PaymentID)
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
