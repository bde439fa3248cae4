package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

var ErrMailerSendNotConfigured = errors.New("mailersend: MAILERSEND_API_KEY and MAIL_FROM_EMAIL are required")

// APIError is a non-2xx answer from the MailerSend API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mailersend: status %d: %s", e.Status, e.Body)
}

// MailerSendSender delivers through the MailerSend HTTP API.
type MailerSendSender struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	timeout time.Duration
}

func NewMailerSendSender(apiKey, fromName, fromEmail string) (*MailerSendSender, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, ErrMailerSendNotConfigured
	}
	return &MailerSendSender{
		client:  mailersend.NewMailersend(apiKey),
		from:    mailersend.From{Name: fromName, Email: fromEmail},
		timeout: 10 * time.Second,
	}, nil
}

func (m *MailerSendSender) Send(ctx context.Context, toEmail, toName, subject, text, html string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.client.Email.Send(ctx, m.message(toEmail, toName, subject, text, html))
	if err != nil {
		return "", fmt.Errorf("mailersend send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return res.Header.Get("X-Message-Id"), nil
}

// message leaves out blank bodies; MailerSend rejects empty text or html.
func (m *MailerSendSender) message(toEmail, toName, subject, text, html string) *mailersend.Message {
	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}
	return msg
}

var _ Sender = (*MailerSendSender)(nil)
