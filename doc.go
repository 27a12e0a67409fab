// Package twofactor is a self-contained two-factor authentication subsystem:
// TOTP enrollment and verification, single-use backup codes, and
// out-of-band (SMS/email) challenge flows with TTL and attempt limiting.
//
// The package composes the building blocks under pkg/ into one Service
// exposing two API groups:
//
//   - Enrollment management: StartEnrollment, ConfirmEnrollment, Disable,
//     RegenerateBackupCodes, IsEnabled. These run on authenticated sessions
//     and return typed errors (ErrInvalidState, ErrInvalidCode, ...).
//   - Step-up verification: IssueChallenge, VerifyChallenge, VerifyTOTP,
//     ConsumeBackupCode. Every failure mode collapses to a plain false so
//     callers - and attackers probing them - cannot distinguish a wrong
//     code from an expired or exhausted challenge.
//
// Storage is pluggable: durable configuration lives in MongoDB or
// PostgreSQL, transient challenge state in Redis, with in-memory stores for
// tests. The subsystem always fails closed - if either store is
// unreachable, verification denies.
//
// # Usage
//
//	cfg, err := twofactor.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc, closeFn, err := twofactor.NewFromConfig(ctx, cfg,
//		twofactor.WithLogger(slog.Default()),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer closeFn()
//
//	result, err := svc.StartEnrollment(ctx, userID)
//	// show result.QRCode and result.BackupCodes to the user, then:
//	err = svc.ConfirmEnrollment(ctx, userID, submittedCode)
//
// At authentication time:
//
//	ok, err := svc.VerifyTOTP(ctx, userID, submittedCode)
//
// or, for SMS/email step-up:
//
//	id, err := svc.IssueChallenge(ctx, userID, twofactor.MethodEmail, email)
//	ok, err := svc.VerifyChallenge(ctx, id, submittedCode)
package twofactor
