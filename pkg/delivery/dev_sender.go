package delivery

import (
	"context"
	"io"
	"log/slog"
)

// Ensure DevSender implements Sender.
var _ Sender = (*DevSender)(nil)

// DevSender implements Sender for local development and tests. Instead of
// calling a provider it logs the message, which makes one-time codes visible
// in development logs without any external account.
type DevSender struct {
	logger *slog.Logger
}

// NewDevSender creates a development sender that writes deliveries to the
// given logger. A nil logger discards everything, which turns the sender
// into a pure no-op.
func NewDevSender(logger *slog.Logger) *DevSender {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DevSender{logger: logger}
}

func (d *DevSender) SendSMS(ctx context.Context, to, message string) error {
	d.logger.InfoContext(ctx, "dev sms delivery",
		slog.String("to", to),
		slog.String("message", message),
	)
	return nil
}

func (d *DevSender) SendEmail(ctx context.Context, to, subject, body string) error {
	d.logger.InfoContext(ctx, "dev email delivery",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
