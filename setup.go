package twofactor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"github.com/dmitrymomot/twofactor/pkg/challenge"
	"github.com/dmitrymomot/twofactor/pkg/delivery"
	"github.com/dmitrymomot/twofactor/pkg/enrollment"
	"github.com/dmitrymomot/twofactor/pkg/mongo"
	"github.com/dmitrymomot/twofactor/pkg/pg"
	"github.com/dmitrymomot/twofactor/pkg/redis"
	"github.com/dmitrymomot/twofactor/pkg/vault"
)

// LoadConfig reads the aggregated configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetupOption configures NewFromConfig.
type SetupOption func(*setupOptions)

type setupOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger shared by all composed services.
func WithLogger(logger *slog.Logger) SetupOption {
	return func(o *setupOptions) {
		o.logger = logger
	}
}

// NewFromConfig wires the full subsystem from configuration: the vault
// codec, the Redis-backed ephemeral store, the durable store selected by
// the database URL scheme, and delivery senders selected by credential
// presence. The returned close function releases every connection the
// setup opened.
func NewFromConfig(ctx context.Context, cfg Config, opts ...SetupOption) (*Service, func(), error) {
	o := setupOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	codec, err := vault.NewFromConfig(cfg.Vault)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){func() { _ = redisClient.Close() }}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	ephemeral := challenge.NewRedisStore(redisClient)
	healthchecks := []func(context.Context) error{redis.Healthcheck(redisClient)}

	store, storeCloser, storeCheck, err := connectDurableStore(ctx, cfg)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, storeCloser)
	healthchecks = append(healthchecks, storeCheck)

	var emailSender delivery.EmailSender
	if cfg.Delivery.PostmarkServerToken != "" {
		emailSender, err = delivery.NewPostmarkSender(cfg.Delivery)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
	} else {
		emailSender = delivery.NewDevSender(o.logger)
	}

	// No SMS provider is wired yet; the dev sender keeps SMS challenges
	// usable in development by logging the code.
	smsSender := delivery.NewDevSender(o.logger)

	enrollmentSvc := enrollment.NewService(store, codec, cfg.Issuer,
		enrollment.WithCache(ephemeral),
		enrollment.WithLogger(o.logger),
	)

	coordinator := challenge.NewCoordinator(ephemeral, cfg.Challenge,
		challenge.WithSMSSender(smsSender),
		challenge.WithEmailSender(emailSender),
		challenge.WithLogger(o.logger),
	)

	service := New(enrollmentSvc, coordinator)
	service.healthchecks = healthchecks
	return service, closeAll, nil
}

func connectDurableStore(ctx context.Context, cfg Config) (enrollment.Store, func(), func(context.Context) error, error) {
	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "mongodb://"),
		strings.HasPrefix(cfg.DatabaseURL, "mongodb+srv://"):
		client, err := mongo.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		store := enrollment.NewMongoStore(client.Database(cfg.DatabaseName))
		closer := func() { _ = client.Disconnect(context.Background()) }
		return store, closer, mongo.Healthcheck(client), nil

	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"),
		strings.HasPrefix(cfg.DatabaseURL, "postgresql://"):
		pool, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		store := enrollment.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return store, pool.Close, pg.Healthcheck(pool), nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported database URL scheme: %s", cfg.DatabaseURL)
	}
}
