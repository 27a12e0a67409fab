package totp_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/totp"
)

// rfcSecret is the RFC 4226 appendix D reference key "12345678901234567890".
const rfcSecret = "3132333435363738393031323334353637383930"

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	raw, err := hex.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, totp.SecretSize)

	other, err := totp.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestComputeCode_RFC4226Vectors(t *testing.T) {
	t.Parallel()

	vectors := map[int64]string{
		0: "755224",
		1: "287082",
		2: "359152",
		3: "969429",
		4: "338314",
		5: "254676",
		6: "287922",
		7: "162583",
		8: "399871",
		9: "520489",
	}

	for step, want := range vectors {
		code, err := totp.ComputeCode(rfcSecret, step)
		require.NoError(t, err)
		assert.Equal(t, want, code, "step %d", step)
	}
}

func TestComputeCode_InvalidSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
	}{
		{name: "empty", secret: ""},
		{name: "not hex", secret: "zzzz"},
		{name: "odd length", secret: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := totp.ComputeCode(tt.secret, 0)
			assert.ErrorIs(t, err, totp.ErrInvalidSecret)
		})
	}
}

func TestVerifyCode(t *testing.T) {
	t.Parallel()

	// Fix the clock at an arbitrary point inside step 54321.
	now := int64(54321)*totp.Period + 7

	current, err := totp.ComputeCode(rfcSecret, totp.TimeStep(now))
	require.NoError(t, err)

	previous, err := totp.ComputeCode(rfcSecret, totp.TimeStep(now)-1)
	require.NoError(t, err)

	next, err := totp.ComputeCode(rfcSecret, totp.TimeStep(now)+1)
	require.NoError(t, err)

	outside, err := totp.ComputeCode(rfcSecret, totp.TimeStep(now)+2)
	require.NoError(t, err)

	wrong := "000000"
	if wrong == current || wrong == previous || wrong == next {
		wrong = "111111"
	}

	tests := []struct {
		name   string
		secret string
		code   string
		window int
		want   bool
	}{
		{name: "current step", secret: rfcSecret, code: current, window: 1, want: true},
		{name: "previous step within window", secret: rfcSecret, code: previous, window: 1, want: true},
		{name: "next step within window", secret: rfcSecret, code: next, window: 1, want: true},
		{name: "two steps ahead outside window", secret: rfcSecret, code: outside, window: 1, want: false},
		{name: "two steps ahead with widened window", secret: rfcSecret, code: outside, window: 2, want: true},
		{name: "zero window rejects drift", secret: rfcSecret, code: previous, window: 0, want: false},
		{name: "wrong code", secret: rfcSecret, code: wrong, window: 1, want: false},
		{name: "short code", secret: rfcSecret, code: "12345", window: 1, want: false},
		{name: "non-digit code", secret: rfcSecret, code: "abcdef", window: 1, want: false},
		{name: "malformed secret", secret: "nothex", code: current, window: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, totp.VerifyCode(tt.secret, tt.code, now, tt.window))
		})
	}
}

func TestVerifyCode_RoundTrip(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	for _, now := range []int64{0, 59, 1111111109, 2000000000} {
		code, err := totp.ComputeCode(secret, totp.TimeStep(now))
		require.NoError(t, err)
		assert.True(t, totp.VerifyCode(secret, code, now, totp.DefaultWindow), "now=%d", now)
	}
}

func TestProvisioningURI(t *testing.T) {
	t.Parallel()

	t.Run("builds key uri", func(t *testing.T) {
		t.Parallel()
		uri, err := totp.ProvisioningURI("alice@example.com", "Acme", rfcSecret)
		require.NoError(t, err)
		assert.Equal(t,
			"otpauth://totp/Acme:alice@example.com?issuer=Acme&secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
			uri,
		)
	})

	t.Run("escapes labels", func(t *testing.T) {
		t.Parallel()
		uri, err := totp.ProvisioningURI("bob+test@example.com", "Acme Corp", rfcSecret)
		require.NoError(t, err)
		assert.Contains(t, uri, "otpauth://totp/Acme%20Corp:bob+test@example.com?")
	})

	t.Run("missing account", func(t *testing.T) {
		t.Parallel()
		_, err := totp.ProvisioningURI("", "Acme", rfcSecret)
		assert.ErrorIs(t, err, totp.ErrMissingAccountName)
	})

	t.Run("missing issuer", func(t *testing.T) {
		t.Parallel()
		_, err := totp.ProvisioningURI("alice@example.com", "", rfcSecret)
		assert.ErrorIs(t, err, totp.ErrMissingIssuer)
	})

	t.Run("invalid secret", func(t *testing.T) {
		t.Parallel()
		_, err := totp.ProvisioningURI("alice@example.com", "Acme", "nothex")
		assert.ErrorIs(t, err, totp.ErrInvalidSecret)
	})
}
