// Package totp implements time-based one-time password generation and
// verification following RFC 4226 (HOTP) and RFC 6238 (TOTP).
//
// Secrets are 32 random bytes, hex-encoded for storage and transport.
// Codes are 6 digits over a 30-second time step, derived with HMAC-SHA1
// dynamic truncation. Verification tolerates clock drift of one time step
// on either side by default and compares codes in constant time.
//
// # Usage
//
//	secret, _ := totp.GenerateSecret()
//
//	// Display to the user for authenticator app enrollment
//	uri, _ := totp.ProvisioningURI("alice@example.com", "Acme", secret)
//
//	// Later, validate a code the user submits
//	ok := totp.Verify(secret, "123456")
//
// The package is pure and stateless: given the same secret and time step,
// ComputeCode always produces the same code, which keeps it trivially
// testable against the RFC 4226 reference vectors.
package totp
