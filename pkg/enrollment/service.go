package enrollment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/twofactor/pkg/backup"
	"github.com/dmitrymomot/twofactor/pkg/qr"
	"github.com/dmitrymomot/twofactor/pkg/totp"
	"github.com/dmitrymomot/twofactor/pkg/vault"
)

const enabledCachePrefix = "2fa:enabled:"

// Cache is an optional TTL key-value layer satisfied by the challenge
// package's ephemeral stores. Any cache error is treated as a miss: the
// durable store stays authoritative.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) (int64, error)
}

// StartResult carries the enrollment material shown to the user exactly
// once. None of it can be retrieved again in plaintext.
type StartResult struct {
	Secret          string   // hex-encoded shared secret for manual entry
	ProvisioningURI string   // otpauth:// URI for authenticator apps
	QRCode          string   // PNG data URI rendering of the provisioning URI
	BackupCodes     []string // single-use recovery codes
}

// Service drives the 2FA configuration lifecycle: not configured, pending
// after setup starts, enabled once the user proves possession of the
// secret, and back to not configured on disable.
type Service struct {
	store       Store
	codec       *vault.Codec
	cache       Cache
	issuer      string
	backupCount int
	backupLen   int
	window      int
	cacheTTL    time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for cache invalidation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCache enables the IsEnabled read-through cache.
func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithCacheTTL overrides the IsEnabled cache lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithBackupCodes overrides how many recovery codes are issued and how long
// each one is.
func WithBackupCodes(count, length int) Option {
	return func(s *Service) {
		s.backupCount = count
		s.backupLen = length
	}
}

// WithVerifyWindow overrides the accepted TOTP clock drift in time steps.
func WithVerifyWindow(window int) Option {
	return func(s *Service) {
		s.window = window
	}
}

// WithClock replaces the service's time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the enrollment service. The issuer is the label shown
// in authenticator apps next to the account name.
func NewService(store Store, codec *vault.Codec, issuer string, opts ...Option) *Service {
	s := &Service{
		store:       store,
		codec:       codec,
		issuer:      issuer,
		backupCount: backup.DefaultCount,
		backupLen:   backup.DefaultLength,
		window:      totp.DefaultWindow,
		cacheTTL:    time.Hour,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start begins enrollment for a user. Valid when no configuration exists;
// an unconfirmed pending configuration is replaced, since it has never been
// proven and the user may simply have lost the first secret. An enabled
// configuration must be disabled before re-enrollment.
func (s *Service) Start(ctx context.Context, userID string) (*StartResult, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if record.State() == StateEnabled {
		return nil, ErrAlreadyEnabled
	}

	secret, err := totp.GenerateSecret()
	if err != nil {
		return nil, err
	}

	uri, err := totp.ProvisioningURI(userID, s.issuer, secret)
	if err != nil {
		return nil, err
	}

	qrCode, err := qr.GenerateBase64Image(uri, 0)
	if err != nil {
		return nil, err
	}

	codes, err := backup.Generate(s.backupCount, s.backupLen)
	if err != nil {
		return nil, err
	}
	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i] = backup.Hash(code)
	}

	cipherText, err := s.codec.Encrypt(secret)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, &Record{
		UserID:           userID,
		SecretCiphertext: cipherText,
		BackupCodeHashes: hashes,
		Enabled:          false,
		CreatedAt:        s.now(),
	}); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, userID)

	return &StartResult{
		Secret:          secret,
		ProvisioningURI: uri,
		QRCode:          qrCode,
		BackupCodes:     codes,
	}, nil
}

// Confirm proves possession of the secret and flips the configuration to
// enabled. Valid only from the pending state; a failed code leaves the
// configuration pending so the user can retry or abandon.
func (s *Service) Confirm(ctx context.Context, userID, code string) error {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if record.State() == StateEnabled {
		return ErrAlreadyEnabled
	}

	secret, err := s.codec.Decrypt(record.SecretCiphertext)
	if err != nil {
		return err
	}

	if !totp.VerifyCode(secret, code, s.now().Unix(), s.window) {
		return ErrInvalidCode
	}

	if err := s.store.Enable(ctx, userID, s.now()); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// Disable tears down an enabled configuration: secret, backup codes, and
// the enabled flag all go, returning the user to the not-configured state.
func (s *Service) Disable(ctx context.Context, userID string) error {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if record.State() != StateEnabled {
		return ErrNotEnabled
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// RegenerateBackupCodes replaces the entire recovery code set, invalidating
// every previously issued code. Valid only while 2FA is enabled.
func (s *Service) RegenerateBackupCodes(ctx context.Context, userID string) ([]string, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record.State() != StateEnabled {
		return nil, ErrNotEnabled
	}

	codes, err := backup.Generate(s.backupCount, s.backupLen)
	if err != nil {
		return nil, err
	}
	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i] = backup.Hash(code)
	}

	if err := s.store.ReplaceBackupCodes(ctx, userID, hashes); err != nil {
		return nil, err
	}
	return codes, nil
}

// IsEnabled reports whether the user has a confirmed 2FA configuration,
// optionally satisfied from the cache. Transitions invalidate the cache
// entry after every durable write, never before.
func (s *Service) IsEnabled(ctx context.Context, userID string) (bool, error) {
	if s.cache != nil {
		if value, err := s.cache.Get(ctx, enabledCachePrefix+userID); err == nil {
			return value == "1", nil
		}
	}

	enabled := false
	record, err := s.store.Get(ctx, userID)
	switch {
	case err == nil:
		enabled = record.Enabled
	case errors.Is(err, ErrNotFound):
		// absent config means not enabled
	default:
		return false, err
	}

	if s.cache != nil {
		value := "0"
		if enabled {
			value = "1"
		}
		if err := s.cache.Set(ctx, enabledCachePrefix+userID, value, s.cacheTTL); err != nil {
			s.logger.ErrorContext(ctx, "failed to cache enabled flag",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}

	return enabled, nil
}

// VerifyTOTP checks an authenticator app code against the user's enabled
// configuration. All failure modes collapse to false.
func (s *Service) VerifyTOTP(ctx context.Context, userID, code string) (bool, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !record.Enabled {
		return false, nil
	}

	secret, err := s.codec.Decrypt(record.SecretCiphertext)
	if err != nil {
		// Corrupt ciphertext fails closed but is surfaced to the caller:
		// it needs operator attention, not a silent deny.
		return false, err
	}

	return totp.VerifyCode(secret, code, s.now().Unix(), s.window), nil
}

// ConsumeBackupCode spends a recovery code. Each code verifies successfully
// at most once; the removal is a single conditional update in the store.
func (s *Service) ConsumeBackupCode(ctx context.Context, userID, code string) (bool, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !record.Enabled {
		return false, nil
	}

	return s.store.ConsumeBackupCode(ctx, userID, backup.Hash(code))
}

// invalidateCache drops the cached enabled flag after a state transition.
// A failed invalidation is logged loudly: a stale positive would let a
// disabled second factor keep gating logins for up to the cache TTL.
func (s *Service) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, enabledCachePrefix+userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate enabled flag cache",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}
