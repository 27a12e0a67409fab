package twofactor

import (
	"github.com/dmitrymomot/twofactor/pkg/challenge"
	"github.com/dmitrymomot/twofactor/pkg/delivery"
	"github.com/dmitrymomot/twofactor/pkg/redis"
	"github.com/dmitrymomot/twofactor/pkg/vault"
)

// Config aggregates the environment-driven settings for NewFromConfig.
type Config struct {
	// Issuer is the label authenticator apps display next to the account.
	Issuer string `env:"TWOFACTOR_ISSUER" envDefault:"twofactor"`

	// DatabaseURL selects the durable store by scheme: mongodb:// or
	// mongodb+srv:// for MongoDB, postgres:// for PostgreSQL.
	DatabaseURL  string `env:"TWOFACTOR_DATABASE_URL,required"`
	DatabaseName string `env:"TWOFACTOR_DATABASE_NAME" envDefault:"app"`

	Redis     redis.Config
	Vault     vault.Config
	Challenge challenge.Config
	Delivery  delivery.Config
}
