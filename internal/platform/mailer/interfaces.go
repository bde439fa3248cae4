package mailer

import (
	"context"
	"time"
)

// Sender delivers one message and returns the provider message ID, if any.
type Sender interface {
	Send(ctx context.Context, toEmail, toName, subject, text, html string) (string, error)
}

// Service sends the customer verification emails.
type Service interface {
	SendVerificationCode(ctx context.Context, toEmail, toName, code string, expiresIn time.Duration) error
	SendVerificationConfirmed(ctx context.Context, toEmail, toName string) error
}
