package twofactor

import (
	"context"

	"github.com/dmitrymomot/twofactor/pkg/challenge"
	"github.com/dmitrymomot/twofactor/pkg/enrollment"
)

// Method aliases are re-exported so callers only import this package.
const (
	MethodTOTP  = challenge.MethodTOTP
	MethodSMS   = challenge.MethodSMS
	MethodEmail = challenge.MethodEmail
)

// StartResult is the one-time enrollment material returned by StartEnrollment.
type StartResult = enrollment.StartResult

// Service is the public face of the 2FA subsystem. Enrollment-management
// calls surface typed errors since they run on authenticated sessions;
// every verification entry point collapses all failure modes to a bare
// false so the API never acts as an oracle for attackers.
type Service struct {
	enrollment  *enrollment.Service
	coordinator *challenge.Coordinator

	// Populated by NewFromConfig with probes for every backing connection.
	healthchecks []func(context.Context) error
}

// New composes the enrollment service and challenge coordinator into the
// public API. Use NewFromConfig for environment-driven wiring.
func New(enrollmentSvc *enrollment.Service, coordinator *challenge.Coordinator) *Service {
	return &Service{
		enrollment:  enrollmentSvc,
		coordinator: coordinator,
	}
}

// StartEnrollment begins 2FA setup and returns the secret, provisioning
// URI, QR code, and backup codes. The material is shown to the user exactly
// once and cannot be retrieved again in plaintext.
func (s *Service) StartEnrollment(ctx context.Context, userID string) (*StartResult, error) {
	return s.enrollment.Start(ctx, userID)
}

// ConfirmEnrollment proves possession of the secret and enables 2FA.
// Returns ErrInvalidCode on a wrong code (the enrollment stays pending) and
// ErrInvalidState once already enabled.
func (s *Service) ConfirmEnrollment(ctx context.Context, userID, code string) error {
	return s.enrollment.Confirm(ctx, userID, code)
}

// Disable tears down an enabled 2FA configuration.
func (s *Service) Disable(ctx context.Context, userID string) error {
	return s.enrollment.Disable(ctx, userID)
}

// RegenerateBackupCodes replaces the user's recovery codes, invalidating
// all previously issued ones.
func (s *Service) RegenerateBackupCodes(ctx context.Context, userID string) ([]string, error) {
	return s.enrollment.RegenerateBackupCodes(ctx, userID)
}

// IsEnabled reports whether the user has a confirmed 2FA configuration.
func (s *Service) IsEnabled(ctx context.Context, userID string) (bool, error) {
	return s.enrollment.IsEnabled(ctx, userID)
}

// IssueChallenge creates an out-of-band challenge and delivers its one-time
// code to the given address. Only the challenge identifier is returned; the
// code travels exclusively through the delivery channel.
func (s *Service) IssueChallenge(ctx context.Context, userID string, method challenge.Method, address string) (string, error) {
	return s.coordinator.Issue(ctx, userID, method, address)
}

// VerifyChallenge checks a submitted out-of-band code. Absent, expired,
// consumed, and attempt-exhausted challenges all return false without
// revealing which guard tripped.
func (s *Service) VerifyChallenge(ctx context.Context, challengeID, code string) (bool, error) {
	return s.coordinator.Verify(ctx, challengeID, code)
}

// VerifyTOTP checks an authenticator app code for callers running a
// challenge-free flow such as a login-time 2FA prompt.
func (s *Service) VerifyTOTP(ctx context.Context, userID, code string) (bool, error) {
	return s.enrollment.VerifyTOTP(ctx, userID, code)
}

// ConsumeBackupCode spends a single-use recovery code.
func (s *Service) ConsumeBackupCode(ctx context.Context, userID, code string) (bool, error) {
	return s.enrollment.ConsumeBackupCode(ctx, userID, code)
}

// Healthcheck pings every backing connection the service was wired with.
// Verification fails closed when a store is down, so readiness probes
// should gate traffic on this check. Services composed with New rather
// than NewFromConfig have no probes and always report healthy.
func (s *Service) Healthcheck(ctx context.Context) error {
	for _, check := range s.healthchecks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}
