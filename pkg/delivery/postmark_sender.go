package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// Ensure PostmarkSender implements EmailSender.
var _ EmailSender = (*PostmarkSender)(nil)

// PostmarkSender implements EmailSender using Postmark's transactional API.
type PostmarkSender struct {
	client *postmark.Client
	config Config
}

// NewPostmarkSender creates a Postmark-backed email sender. Both tokens are
// required for runtime operation - this enforces explicit configuration
// rather than silent failures in production.
func NewPostmarkSender(cfg Config) (*PostmarkSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}

	return &PostmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// SendEmail delivers a plain-text transactional email. One-time codes must
// not be tracked: link and open tracking stay disabled so the code never
// leaks into analytics.
func (s *PostmarkSender) SendEmail(ctx context.Context, to, subject, body string) error {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.config.SenderEmail,
		To:       to,
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSend,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
