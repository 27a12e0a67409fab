package challenge

import "time"

// Config controls challenge lifetimes and the attempt budget.
type Config struct {
	SMSCodeTTL   time.Duration `env:"TWOFACTOR_SMS_CODE_TTL" envDefault:"300s"`   // SMS codes race against carrier latency, keep them short-lived
	EmailCodeTTL time.Duration `env:"TWOFACTOR_EMAIL_CODE_TTL" envDefault:"600s"` // Email delivery is slower, allow twice the window
	MaxAttempts  int           `env:"TWOFACTOR_MAX_ATTEMPTS" envDefault:"3"`      // Failed verifications before the challenge is destroyed
}

// GetDefaults returns a copy with standard values applied to zero fields.
func (c Config) GetDefaults() Config {
	if c.SMSCodeTTL <= 0 {
		c.SMSCodeTTL = 300 * time.Second
	}
	if c.EmailCodeTTL <= 0 {
		c.EmailCodeTTL = 600 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	return c
}

// ttl returns the code lifetime for a delivery method.
func (c Config) ttl(method Method) time.Duration {
	if method == MethodSMS {
		return c.SMSCodeTTL
	}
	return c.EmailCodeTTL
}
