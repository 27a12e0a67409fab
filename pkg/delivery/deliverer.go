package delivery

import "context"

// SMSSender delivers short text messages. Implementations are selected at
// startup based on configured credentials; there is no lazy SDK loading at
// call time.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// EmailSender delivers transactional email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Sender combines both delivery channels. DevSender implements it for
// environments without delivery credentials.
type Sender interface {
	SMSSender
	EmailSender
}
