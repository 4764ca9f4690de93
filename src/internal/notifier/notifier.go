package notifier

import (
	"context"
	"sync"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/logger"
)

// Email is the delivery request handed to the Notifier. Delivery is best
// effort and happens outside every consistency boundary.
type Email struct {
	EventID string `json:"eventId"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Notifier interface {
	Notify(ctx context.Context, email Email) error
}

// Discard is a Notifier that drops every email. It stands in when no broker
// is configured so the rest of the system never has to nil-check.
type Discard struct{}

func (Discard) Notify(context.Context, Email) error { return nil }

// Dispatcher fans emails into a background goroutine so callers never wait on
// delivery and a delivery failure can never roll back a committed mutation.
type Dispatcher struct {
	notifier Notifier
	queue    chan Email
	done     chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(notifier Notifier, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}

	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Email, buffer),
		done:     make(chan struct{}),
	}
	go d.run()

	return d
}

// Enqueue hands off an email without blocking. When the queue is full or the
// dispatcher has shut down the email is dropped; notification loss is
// acceptable, blocking a committed operation is not.
func (d *Dispatcher) Enqueue(email Email) {
	if email.To == "" {
		logger.Info("notification skipped, recipient address is empty", logger.Fields{
			"subject": email.Subject,
		})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		logger.Info("notification skipped, dispatcher is closed", logger.Fields{
			"eventId": email.EventID,
			"subject": email.Subject,
		})
		return
	}

	select {
	case d.queue <- email:
	default:
		logger.Error("notification queue full, dropping email", nil, logger.Fields{
			"eventId": email.EventID,
			"subject": email.Subject,
		})
	}
}

// Close stops accepting new emails and waits for the queue to drain. Safe to
// call more than once; the send side is only closed under the same lock
// Enqueue holds, so a racing enqueue is dropped instead of panicking.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for email := range d.queue {
		if err := d.notifier.Notify(context.Background(), email); err != nil {
			logger.Error("notification delivery failed", err, logger.Fields{
				"eventId": email.EventID,
				"subject": email.Subject,
			})
			continue
		}
		logger.Info("notification dispatched", logger.Fields{
			"eventId": email.EventID,
			"subject": email.Subject,
		})
	}
}
