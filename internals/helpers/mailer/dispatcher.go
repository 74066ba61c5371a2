package mailer

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"campusvibe_backend/internals/helpers/metrics"
)

// Notifier accepts messages for best-effort delivery. Dispatch never blocks on
// the transport and never reports delivery failures to the caller.
type Notifier interface {
	Dispatch(msgs ...*Message)
}

// Dispatcher delivers messages on a small worker pool, decoupled from the
// request or transaction that produced them. Failures are logged and counted,
// never retried.
type Dispatcher struct {
	sender      Sender
	queue       chan *Message
	sendTimeout time.Duration

	pending sync.WaitGroup
	workers sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	d := &Dispatcher{
		sender:      sender,
		queue:       make(chan *Message, queueSize),
		sendTimeout: 20 * time.Second,
	}
	for i := 0; i < workers; i++ {
		d.workers.Add(1)
		go d.run()
	}
	return d
}

func (d *Dispatcher) Dispatch(msgs ...*Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, msg := range msgs {
		if msg == nil || !msg.HasRecipients() || !msg.HasContent() {
			continue
		}
		if d.closed {
			d.drop(msg, "dispatcher closed")
			continue
		}
		d.pending.Add(1)
		select {
		case d.queue <- msg:
		default:
			d.pending.Done()
			d.drop(msg, "queue full")
		}
	}
}

func (d *Dispatcher) drop(msg *Message, reason string) {
	metrics.MailMessages.WithLabelValues("dropped").Inc()
	log.Printf("[MAILER] dropped kind=%s to=%s: %s", msg.Kind, strings.Join(msg.Recipients(), ","), reason)
}

func (d *Dispatcher) run() {
	defer d.workers.Done()
	for msg := range d.queue {
		d.deliver(msg)
		d.pending.Done()
	}
}

func (d *Dispatcher) deliver(msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			metrics.MailMessages.WithLabelValues("failed").Inc()
			log.Printf("[MAILER] panic kind=%s: %v", msg.Kind, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, msg); err != nil {
		metrics.MailMessages.WithLabelValues("failed").Inc()
		log.Printf("[MAILER] failed kind=%s to=%s: %v", msg.Kind, strings.Join(msg.Recipients(), ","), err)
		return
	}
	metrics.MailMessages.WithLabelValues("sent").Inc()
}

// Wait blocks until every accepted message has been handed to the sender.
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

// Shutdown stops accepting messages and drains the queue until ctx is done.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
