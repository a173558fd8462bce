package bus

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"expressia/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitChangeBus extends the change signal beyond process boundaries using a
// RabbitMQ fanout exchange. Every instance of the service binds its own
// exclusive queue, so a broadcast from one instance reaches the subscribers
// of all instances, including the sender's own.
//
// The message body is an opaque timestamp; receivers ignore it and re-read
// the collection from the store.
type RabbitChangeBus struct {
	channel  *amqp091.Channel
	exchange string
	local    *InProcChangeBus
}

// NewRabbitChangeBus declares the fanout exchange, binds an exclusive queue
// to it, and starts consuming. Incoming messages are dispatched to local
// subscribers.
func NewRabbitChangeBus(channel *amqp091.Channel, exchange string) (*RabbitChangeBus, error) {
	if err := channel.ExchangeDeclare(
		exchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, err
	}

	queue, err := channel.QueueDeclare(
		"",    // broker-named
		false, // not durable, signals are worthless after a restart
		true,  // auto-delete
		true,  // exclusive per instance
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	// fanout ignores the routing key
	if err = channel.QueueBind(queue.Name, "", exchange, false, nil); err != nil {
		return nil, err
	}

	msgs, err := channel.Consume(queue.Name, "", true, true, false, false, nil)
	if err != nil {
		return nil, err
	}

	b := &RabbitChangeBus{
		channel:  channel,
		exchange: exchange,
		local:    NewInProcChangeBus(),
	}

	go func() {
		for range msgs {
			b.local.Notify()
		}
		slog.Info("change bus consumer stopped", "exchange", exchange)
	}()

	return b, nil
}

// Broadcast publishes a change signal to the fanout exchange. Local
// subscribers are reached through the bus's own bound queue, so a lost
// broker connection surfaces as an error instead of silently skipping
// remote viewers.
func (b *RabbitChangeBus) Broadcast(ctx context.Context) error {
	return b.channel.PublishWithContext(
		ctx,
		b.exchange,
		"",
		false,
		false,
		amqp091.Publishing{
			ContentType: "text/plain",
			Body:        []byte(strconv.FormatInt(time.Now().UnixMilli(), 10)),
		},
	)
}

// Notify invokes local subscribers without touching the broker. Used by the
// revision watcher when an external storage mutation is detected.
func (b *RabbitChangeBus) Notify() {
	b.local.Notify()
}

// Subscribe registers a callback invoked on every received change signal.
func (b *RabbitChangeBus) Subscribe(fn func()) ports.UnsubscribeFunc {
	return b.local.Subscribe(fn)
}
