// Package challenge manages out-of-band (SMS/email) one-time code
// verification backed by a TTL-capable ephemeral store.
//
// A challenge is a pair of sibling entries keyed by an unguessable
// identifier: the challenge metadata and the one-time code with its attempt
// counter. A challenge terminates on the first of success, attempt
// exhaustion, or TTL expiry, and every terminal path purges the entries
// immediately so a spent code can never be replayed within its remaining
// TTL window. Terminal states are indistinguishable to callers on purpose:
// the uniform failure resists enumeration of which guard tripped.
//
// Race safety rests on two store primitives rather than client-side
// locking: an atomic TTL-preserving increment for attempt counting, and
// delete-with-count as the consumption compare-and-swap. RedisStore
// provides both natively; MemoryStore mirrors them under a mutex for tests
// and development.
package challenge
