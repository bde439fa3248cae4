package mailer

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/diagnosis/car-rental/pkg/logger"
)

type TemplatedService struct {
	sender  Sender
	appName string
}

func NewService(sender Sender, appName string) *TemplatedService {
	return &TemplatedService{sender: sender, appName: appName}
}

func (s *TemplatedService) SendVerificationCode(ctx context.Context, toEmail, toName, code string, expiresIn time.Duration) error {
	minutes := int(expiresIn.Minutes())
	subject := fmt.Sprintf("Your %s verification code", s.appName)
	text := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in %d minutes.", toName, code, minutes)
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your verification code is <b>%s</b>.</p><p>It expires in %d minutes.</p>`,
		html.EscapeString(toName), code, minutes)

	id, err := s.sender.Send(ctx, toEmail, toName, subject, text, body)
	if err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	logger.InfoContext(ctx, "Verification code email sent", "to", toEmail, "message_id", id)
	return nil
}

func (s *TemplatedService) SendVerificationConfirmed(ctx context.Context, toEmail, toName string) error {
	subject := fmt.Sprintf("Your %s account is verified", s.appName)
	text := fmt.Sprintf("Hi %s,\n\nYour email address has been verified. You can now sign in.", toName)
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your email address has been verified. You can now sign in.</p>`,
		html.EscapeString(toName))

	id, err := s.sender.Send(ctx, toEmail, toName, subject, text, body)
	if err != nil {
		return fmt.Errorf("send verification confirmation: %w", err)
	}
	logger.InfoContext(ctx, "Verification confirmation email sent", "to", toEmail, "message_id", id)
	return nil
}

var _ Service = (*TemplatedService)(nil)
