package notifier

import (
	"context"
	"sync"
	"testing"
)

type captureNotifier struct {
	mu     sync.Mutex
	emails []Email
}

func (c *captureNotifier) Notify(_ context.Context, email Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.emails = append(c.emails, email)
	return nil
}

func (c *captureNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.emails)
}

func TestDispatcherDrainsQueueOnClose(t *testing.T) {
	capture := &captureNotifier{}
	d := NewDispatcher(capture, 8)

	for i := 0; i < 3; i++ {
		d.Enqueue(Email{EventID: "evt", To: "holder@example.com", Subject: "s", Body: "b"})
	}
	d.Close()

	if capture.count() != 3 {
		t.Fatalf("expected 3 delivered emails after drain, got %d", capture.count())
	}
}

func TestDispatcherEnqueueAfterCloseIsDropped(t *testing.T) {
	capture := &captureNotifier{}
	d := NewDispatcher(capture, 8)
	d.Close()

	// Must not panic on the closed queue and must not deliver.
	d.Enqueue(Email{EventID: "evt", To: "holder@example.com", Subject: "s", Body: "b"})

	if capture.count() != 0 {
		t.Fatalf("expected no deliveries after close, got %d", capture.count())
	}
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(Discard{}, 8)
	d.Close()
	d.Close()
}

func TestDispatcherSkipsEmptyRecipient(t *testing.T) {
	capture := &captureNotifier{}
	d := NewDispatcher(capture, 8)

	d.Enqueue(Email{EventID: "evt", Subject: "s", Body: "b"})
	d.Close()

	if capture.count() != 0 {
		t.Fatalf("expected email without recipient to be skipped, got %d deliveries", capture.count())
	}
}
