package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/rabbitmq/amqp091-go"
)

const emailRoutingKey = "notification.email"

// AMQPNotifier publishes email events to a durable topic exchange. A separate
// delivery worker owns the SMTP mechanics; this process only emits events.
type AMQPNotifier struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewAMQPNotifier(amqpURL string, exchange string) (*AMQPNotifier, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.Dial(cleanURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPNotifier{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, email Email) error {
	body, err := json.Marshal(email)
	if err != nil {
		return err
	}

	return n.channel.PublishWithContext(ctx,
		n.exchange,
		emailRoutingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

func (n *AMQPNotifier) Close() {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		n.conn.Close()
	}
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	if !strings.HasSuffix(clean, "/") {
		clean += "/"
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
