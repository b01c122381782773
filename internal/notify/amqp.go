package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPDispatcher publishes push messages to a durable queue.
type AMQPDispatcher struct {
	conn  *amqp.Connection
	chn   *amqp.Channel
	queue string
}

// NewAMQPDispatcher connects to the broker and declares the push queue.
func NewAMQPDispatcher(url, queue string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = chn.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		chn.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPDispatcher{conn: conn, chn: chn, queue: queue}, nil
}

// Dispatch publishes a push message to the queue.
func (d *AMQPDispatcher) Dispatch(ctx context.Context, push Push) error {
	body, err := json.Marshal(push)
	if err != nil {
		return fmt.Errorf("failed to marshal push: %w", err)
	}

	err = d.chn.PublishWithContext(
		ctx,
		"",      // exchange
		d.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish push: %w", err)
	}

	return nil
}

// Close closes the channel and connection.
func (d *AMQPDispatcher) Close() error {
	if err := d.chn.Close(); err != nil {
		return err
	}
	return d.conn.Close()
}
