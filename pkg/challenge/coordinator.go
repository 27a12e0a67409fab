package challenge

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/twofactor/pkg/delivery"
)

const (
	codeDigits      = 6
	deliveryTimeout = 10 * time.Second
)

var codeSpace = big.NewInt(1_000_000)

// Coordinator manages the out-of-band one-time code lifecycle: issuing
// codes into the ephemeral store, dispatching them through a delivery
// channel, and verifying submissions with replay prevention and attempt
// capping.
type Coordinator struct {
	store       Store
	config      Config
	smsSender   delivery.SMSSender
	emailSender delivery.EmailSender
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Coordinator during construction.
type Option func(*Coordinator)

// WithLogger sets a custom logger for delivery and purge failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithSMSSender sets the SMS delivery channel.
func WithSMSSender(sender delivery.SMSSender) Option {
	return func(c *Coordinator) {
		c.smsSender = sender
	}
}

// WithEmailSender sets the email delivery channel.
func WithEmailSender(sender delivery.EmailSender) Option {
	return func(c *Coordinator) {
		c.emailSender = sender
	}
}

// WithClock replaces the coordinator's time source, used by tests to
// exercise expiry behavior deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// NewCoordinator creates a challenge coordinator backed by the given
// ephemeral store. Without sender options, codes are delivered through a
// silent dev sender.
func NewCoordinator(store Store, cfg Config, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		config: cfg.GetDefaults(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.smsSender == nil || c.emailSender == nil {
		dev := delivery.NewDevSender(c.logger)
		if c.smsSender == nil {
			c.smsSender = dev
		}
		if c.emailSender == nil {
			c.emailSender = dev
		}
	}

	return c
}

// Issue creates a fresh challenge for the user and hands the one-time code
// to the delivery channel. The challenge is persisted before delivery is
// attempted, so a delivery failure never leaves a half-issued challenge;
// the caller only ever receives the challenge identifier, never the code.
//
// Issuing a new challenge revokes any outstanding challenge for the same
// user and method.
func (c *Coordinator) Issue(ctx context.Context, userID string, method Method, address string) (string, error) {
	if userID == "" {
		return "", ErrMissingUserID
	}
	if !method.deliverable() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	if address == "" {
		return "", ErrMissingAddress
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	ttl := c.config.ttl(method)

	// Revoke the previous outstanding challenge before the new one becomes
	// reachable, so at most one code per user and method is ever live.
	if prevID, err := c.store.Get(ctx, userKey(userID, method)); err == nil {
		c.purge(ctx, prevID, userID, method)
	} else if !errors.Is(err, ErrKeyNotFound) {
		return "", err
	}

	meta := Metadata{
		UserID:    userID,
		Method:    method,
		ExpiresAt: c.now().Add(ttl),
	}
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}

	if err := c.store.Set(ctx, codeKey(id), code, ttl); err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, attemptsKey(id), "0", ttl); err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, metaKey(id), string(rawMeta), ttl); err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, userKey(userID, method), id, ttl); err != nil {
		return "", err
	}

	c.deliver(ctx, method, address, code, ttl)

	return id, nil
}

// Verify checks a submitted code against the challenge. Absent, expired,
// used, and attempt-exhausted challenges all fail identically so callers
// cannot distinguish the terminal states. A successful verification
// consumes the challenge; failed attempts count against the cap without
// extending the remaining TTL.
func (c *Coordinator) Verify(ctx context.Context, challengeID, submittedCode string) (bool, error) {
	if challengeID == "" || submittedCode == "" {
		return false, nil
	}

	rawMeta, err := c.store.Get(ctx, metaKey(challengeID))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(rawMeta), &meta); err != nil {
		c.purge(ctx, challengeID, "", "")
		return false, nil
	}

	if meta.Used || c.now().After(meta.ExpiresAt) {
		c.purge(ctx, challengeID, meta.UserID, meta.Method)
		return false, nil
	}

	// Count this consultation before comparing. The atomic increment makes
	// concurrent attempts observe distinct values, so the cap cannot be
	// bypassed by racing requests.
	attempts, err := c.store.Incr(ctx, attemptsKey(challengeID), time.Until(meta.ExpiresAt))
	if err != nil {
		return false, err
	}
	if attempts > int64(c.config.MaxAttempts) {
		c.purge(ctx, challengeID, meta.UserID, meta.Method)
		return false, nil
	}

	code, err := c.store.Get(ctx, codeKey(challengeID))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			c.purge(ctx, challengeID, meta.UserID, meta.Method)
			return false, nil
		}
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(submittedCode)) != 1 {
		return false, nil
	}

	// Deleting the code key is the commit point: of two racing correct
	// submissions only the one that actually removed the key succeeds.
	removed, err := c.store.Delete(ctx, codeKey(challengeID))
	if err != nil {
		return false, err
	}
	if removed == 0 {
		return false, nil
	}

	c.purge(ctx, challengeID, meta.UserID, meta.Method)
	return true, nil
}

// purge removes every entry belonging to a challenge. Terminal challenges
// must disappear immediately rather than waiting out their TTL, otherwise a
// consumed code would stay guessable for the remaining window.
func (c *Coordinator) purge(ctx context.Context, challengeID, userID string, method Method) {
	keys := []string{metaKey(challengeID), codeKey(challengeID), attemptsKey(challengeID)}
	if userID != "" && method != "" {
		keys = append(keys, userKey(userID, method))
	}
	if _, err := c.store.Delete(ctx, keys...); err != nil {
		c.logger.ErrorContext(ctx, "failed to purge challenge",
			slog.String("challenge_id", challengeID),
			slog.Any("error", err),
		)
	}
}

// deliver hands the code to the delivery collaborator without blocking
// issuance. Failures are logged; the caller can always request a resend.
func (c *Coordinator) deliver(ctx context.Context, method Method, address, code string, ttl time.Duration) {
	// Delivery must survive the request context: issuance has already
	// committed the challenge at this point.
	ctx = context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		defer cancel()

		var err error
		switch method {
		case MethodSMS:
			err = c.smsSender.SendSMS(ctx, address, smsMessage(code, ttl))
		case MethodEmail:
			err = c.emailSender.SendEmail(ctx, address, "Your verification code", emailBody(code, ttl))
		}
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to deliver challenge code",
				slog.String("method", string(method)),
				slog.Any("error", err),
			)
		}
	}()
}

func smsMessage(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes()))
}

func emailBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Your verification code is %s.\n\nThe code expires in %d minutes. If you did not request it, you can ignore this message.",
		code, int(ttl.Minutes()),
	)
}

// generateCode draws a uniformly random 6-digit code. This is deliberately
// not the TOTP algorithm: out-of-band codes share no secret with the
// authenticator app.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateCode, err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
