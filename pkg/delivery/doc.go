// Package delivery defines the outbound SMS/email capability interfaces the
// challenge coordinator hands one-time codes to.
//
// Delivery is fire-and-forget from the 2FA subsystem's perspective: a
// failed send is logged by the caller but never rolls back challenge
// issuance. Implementations are chosen once at startup - PostmarkSender
// when credentials are configured, DevSender otherwise.
package delivery
