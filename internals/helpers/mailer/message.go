package mailer

import (
	"net/mail"
	"strings"
)

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outgoing notification.
type Message struct {
	To          []mail.Address
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
	// Kind labels the template that produced the message (welcome, payment_rejected, ...).
	Kind string
}

func To(addrs ...string) []mail.Address {
	out := make([]mail.Address, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		out = append(out, mail.Address{Address: a})
	}
	return out
}

func (m *Message) HasRecipients() bool { return len(m.To) > 0 }

func (m *Message) HasContent() bool {
	return strings.TrimSpace(m.Text) != "" || strings.TrimSpace(m.HTML) != ""
}

func (m *Message) Recipients() []string {
	out := make([]string, 0, len(m.To))
	for _, a := range m.To {
		out = append(out, a.Address)
	}
	return out
}
