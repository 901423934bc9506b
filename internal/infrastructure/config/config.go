package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AuthRateLimitRPM caps login and refresh attempts per client IP.
	AuthRateLimitRPM int `env:"AUTH_RATE_LIMIT_RPM, default=30"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig names the key material and token lifetimes. The private and
// public key paths must point at a PEM-encoded RSA key pair; the process
// refuses to start without them.
type JWTConfig struct {
	PrivateKeyPath    string `env:"JWT_PRIVATE_KEY_PATH, default=jwt-private.pem"`
	PublicKeyPath     string `env:"JWT_PUBLIC_KEY_PATH,  default=jwt-public.pem"`
	Algorithm         string `env:"JWT_ALGORITHM,        default=RS256"`
	Issuer            string `env:"JWT_ISSUER,           default=cineplex"`
	AccessTTLMinutes  int    `env:"ACCESS_TOKEN_TTL_MINUTES,  default=60"`
	RefreshTTLMinutes int    `env:"REFRESH_TOKEN_TTL_MINUTES, default=43200"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cinema_reservations"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// A local .env file, when present, is loaded first for development setups.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
