package vault

import (
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

type Config struct {
	EncryptionKey string `env:"TWOFACTOR_ENCRYPTION_KEY,required"` // Base64-encoded 32-byte AES-256 key
}

// LoadConfig reads the vault configuration from the environment once per
// process and caches the result for subsequent calls.
func LoadConfig() (Config, error) {
	configLoadFunc := func() (Config, error) {
		var cfg Config
		if err := env.Parse(&cfg); err != nil {
			return Config{}, err
		}
		if cfg.EncryptionKey == "" {
			return Config{}, ErrKeyNotSet
		}
		return cfg, nil
	}

	var err error
	once.Do(func() {
		cfg, err = configLoadFunc()
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
