// Package backup generates and verifies single-use recovery codes issued
// alongside TOTP enrollment.
//
// Plaintext codes exist only at generation time; storage keeps SHA-256
// digests, and consuming a code removes its digest from the stored set so
// every code verifies successfully at most once. The digests are unsalted
// on purpose: consumption is a set-membership lookup followed by a
// conditional removal, which a salted hash would make impossible.
package backup
