// Package enrollment governs the lifecycle of a user's two-factor
// configuration: not configured, pending once setup starts, enabled after
// the user proves possession of the secret, and back to not configured on
// disable.
//
// The durable record never exists in a partially enabled form. Enrollment
// material (plaintext secret, provisioning URI, QR code, backup codes) is
// returned exactly once from Start; afterwards only the encrypted secret
// and code hashes remain. The enable transition and backup-code
// consumption are conditional single-row/single-document updates in every
// Store implementation, so concurrent requests cannot double-enable a
// configuration or double-spend a recovery code.
//
// Store implementations are provided for MongoDB (MongoStore), PostgreSQL
// (PostgresStore), and memory (MemoryStore, for tests and development).
// The optional Cache makes IsEnabled cheap on hot login paths; every state
// transition invalidates it write-side.
package enrollment
