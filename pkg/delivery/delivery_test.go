package delivery_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/delivery"
)

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("logs sms delivery", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		sender := delivery.NewDevSender(slog.New(slog.NewTextHandler(&buf, nil)))

		require.NoError(t, sender.SendSMS(context.Background(), "+15550100", "Your code is 123456"))
		assert.Contains(t, buf.String(), "+15550100")
		assert.Contains(t, buf.String(), "123456")
	})

	t.Run("logs email delivery", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		sender := delivery.NewDevSender(slog.New(slog.NewTextHandler(&buf, nil)))

		require.NoError(t, sender.SendEmail(context.Background(), "alice@example.com", "Verification code", "Your code is 654321"))
		assert.Contains(t, buf.String(), "alice@example.com")
		assert.Contains(t, buf.String(), "654321")
	})

	t.Run("nil logger is a no-op", func(t *testing.T) {
		t.Parallel()

		sender := delivery.NewDevSender(nil)
		assert.NoError(t, sender.SendSMS(context.Background(), "+15550100", "hello"))
		assert.NoError(t, sender.SendEmail(context.Background(), "alice@example.com", "subject", "body"))
	})
}

func TestNewPostmarkSender(t *testing.T) {
	t.Parallel()

	valid := delivery.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
	}

	tests := []struct {
		name   string
		mutate func(cfg *delivery.Config)
	}{
		{"missing server token", func(cfg *delivery.Config) { cfg.PostmarkServerToken = "" }},
		{"missing account token", func(cfg *delivery.Config) { cfg.PostmarkAccountToken = "" }},
		{"missing sender email", func(cfg *delivery.Config) { cfg.SenderEmail = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)
			sender, err := delivery.NewPostmarkSender(cfg)
			assert.ErrorIs(t, err, delivery.ErrInvalidConfig)
			assert.Nil(t, sender)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := delivery.NewPostmarkSender(valid)
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}
