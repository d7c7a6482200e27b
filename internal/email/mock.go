package email

import (
	"context"
	"sync"
)

// SentMail is one message recorded by Mock.
type SentMail struct {
	Recipient string
	Subject   string
	Body      string
}

// Mock is a mock implementation of Sender for testing.
type Mock struct {
	mu sync.Mutex

	SendFunc func(ctx context.Context, recipient, subject, body string) error
	Sent     []SentMail
}

// NewMock creates a new mock sender.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Send(ctx context.Context, recipient, subject, body string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentMail{Recipient: recipient, Subject: subject, Body: body})
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, recipient, subject, body)
	}
	return nil
}

// Last returns the most recently sent message.
func (m *Mock) Last() (SentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentMail{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
