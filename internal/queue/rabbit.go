package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Rabbit struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbit(url string) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Rabbit{conn: conn, ch: ch}, nil
}

func (p *Rabbit) Close() error {
	p.ch.Close()
	return p.conn.Close()
}

func (p *Rabbit) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, exchange, key, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			MessageId:   uuid.NewString(),
			Timestamp:   time.Now(),
			Headers: amqp.Table{
				"X-Request-ID": reqID,
			},
		})
}
