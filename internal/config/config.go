package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  It is built once at start-up and passed by value
// to whatever needs it; nothing reads the environment afterwards.
type Config struct {
	Env         string // application environment (dev, test, prod)
	Port        string // HTTP port to listen on
	Secret      string // HMAC secret for session tokens
	FrontendURL string // storefront origin, used for CORS and reset links

	DBUser string
	DBPass string // optional
	DBHost string
	DBPort string
	DBName string

	BcryptCost    int
	SessionTTL    time.Duration // lifetime of session tokens and the cookie
	ResetTokenTTL time.Duration // lifetime of password reset tokens

	MailFrom    string
	RabbitMQURL string // empty disables the mail queue
	MailOutbox  string // directory the mail consumer appends to

	LogLevel string

	Redis     RedisConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

// Load reads an optional .env file and then the environment.  Required
// variables are enforced by must() and missing values stop the program.
func Load() Config {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	return Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		Secret:      must("APP_SECRET"),
		FrontendURL: strings.TrimRight(must("FRONTEND_URL"), "/"),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		BcryptCost:    envInt("BCRYPT_COST", 10),
		SessionTTL:    envDur("SESSION_TTL", 365*24*time.Hour),
		ResetTokenTTL: envDur("RESET_TOKEN_TTL", time.Hour),

		MailFrom:    envStr("MAIL_FROM", "no-reply@storefront.local"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		MailOutbox:  envStr("MAIL_OUTBOX_DIR", "logs"),

		LogLevel: envStr("LOG_LEVEL", "info"),

		Redis:     LoadRedisConfig(),
		RateLimit: LoadRateLimitConfig(),
		Cache:     LoadCacheConfig(),
	}
}

// IsDev reports whether the service runs in development mode.
func (c Config) IsDev() bool { return strings.EqualFold(c.Env, "dev") }

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
