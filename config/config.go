package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Billing  BillingConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Env          string        `env:"APP_ENV" envDefault:"development"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	// Driver selects the backing engine: "mysql" or "sqlite".
	Driver          string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN             string        `env:"DB_DSN" envDefault:"dramastream.db"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"dramastream"`
}

// BillingConfig carries store-side verification credentials. When a
// credential is empty the matching verifier runs in simulated mode.
type BillingConfig struct {
	AndroidPackageName    string        `env:"ANDROID_PACKAGE_NAME" envDefault:"com.dramastream"`
	GooglePlayCredentials string        `env:"GOOGLE_PLAY_CREDENTIALS"` // service-account JSON
	AppleBundleID         string        `env:"APPLE_BUNDLE_ID" envDefault:"com.dramastream"`
	AppleSharedSecret     string        `env:"APPLE_SHARED_SECRET"`
	VerifyTimeout         time.Duration `env:"RECEIPT_VERIFY_TIMEOUT" envDefault:"10s"`
}

func Load() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
