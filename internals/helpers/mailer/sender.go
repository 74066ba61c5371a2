package mailer

import (
	"context"
	"log"
	"strings"
	"sync"

	"campusvibe_backend/internals/configs"
)

// Sender delivers a single message synchronously.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// ConsoleSender logs messages instead of delivering them. Used in development.
type ConsoleSender struct{}

func (ConsoleSender) Send(_ context.Context, msg *Message) error {
	log.Printf("[MAILER] console to=%s subject=%q attachments=%d\n%s",
		strings.Join(msg.Recipients(), ","), msg.Subject, len(msg.Attachments), msg.Text)
	return nil
}

// Recorder keeps every message it is handed. Used in tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, *msg)
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

// ByKind filters recorded messages by template kind.
func (r *Recorder) ByKind(kind string) []Message {
	var out []Message
	for _, m := range r.Messages() {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// NewSenderFromEnv picks the transport from MAIL_DRIVER.
func NewSenderFromEnv() Sender {
	switch strings.ToLower(configs.GetEnv("MAIL_DRIVER", "console")) {
	case "sendgrid":
		key := configs.GetEnv("SENDGRID_API_KEY")
		if key == "" {
			log.Println("[MAILER] SENDGRID_API_KEY missing, falling back to console")
			return ConsoleSender{}
		}
		return NewSendgridSender(
			key,
			configs.GetEnv("MAIL_FROM_NAME", "CampusVibe"),
			configs.GetEnv("MAIL_FROM_ADDRESS", "no-reply@campusvibe.local"),
		)
	default:
		return ConsoleSender{}
	}
}
