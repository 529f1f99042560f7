package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable; every variable has a default so the
// assistant starts with no environment at all.
type Config struct {
	Env  string // application environment ("dev", "prod")
	Port string // HTTP port to listen on

	StoreDriver string // "file" or "mysql"
	DataDir     string // directory of the JSON documents (file driver)
	DBUser      string // database username (mysql driver)
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name

	JWTSecret     string        // secret used to sign JWTs
	AccessTTLMin  int           // access token time-to-live in minutes
	BcryptCost    int           // bcrypt cost for password hashing
	SessionSecret string        // key of the chat session cookie
	SessionTTL    time.Duration // idle time after which a chat session is dropped

	RabbitURL string // broker URL; empty disables booking events

	BasePrice      float64 // price of one standard ticket
	VIPSurcharge   float64 // extra charged per VIP ticket
	TaxRate        float64 // tax applied to the subtotal
	MaxTickets     int     // upper bound of tickets per reservation
	DefaultTheater string  // theater used by quick-fill bookings
	CancelPolicy   string  // "soft" marks reservations cancelled, "hard" removes them

	SuggestionInterval time.Duration // period of the suggestion producer; 0 disables it
	SurfaceSuggestions bool          // append a queued suggestion to idle replies
}

// Cancellation policies.
const (
	CancelSoft = "soft"
	CancelHard = "hard"
)

// Store drivers.
const (
	DriverFile  = "file"
	DriverMySQL = "mysql"
)

// Load reads an optional .env file, then the environment, and returns a
// validated Config.
func Load() (Config, error) {
	// a missing .env file is the normal case outside development
	_ = godotenv.Load()

	cfg := Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8080"),

		StoreDriver: strings.ToLower(envStr("STORE_DRIVER", DriverFile)),
		DataDir:     envStr("DATA_DIR", "data"),
		DBUser:      envStr("DB_USER", "root"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      envStr("DB_HOST", "127.0.0.1"),
		DBPort:      envStr("DB_PORT", "3306"),
		DBName:      envStr("DB_NAME", "movie_booking"),

		JWTSecret:     envStr("JWT_SECRET", ""),
		AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		SessionSecret: envStr("SESSION_SECRET", ""),
		SessionTTL:    envDur("SESSION_TTL", 30*time.Minute),

		RabbitURL: envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),

		BasePrice:      envFloat("TICKET_BASE_PRICE", 12.50),
		VIPSurcharge:   envFloat("TICKET_VIP_SURCHARGE", 5.00),
		TaxRate:        envFloat("TICKET_TAX_RATE", 0.08),
		MaxTickets:     envInt("MAX_TICKETS", 10),
		DefaultTheater: envStr("DEFAULT_THEATER", "City Center Cinemas"),
		CancelPolicy:   strings.ToLower(envStr("CANCEL_POLICY", CancelSoft)),

		SuggestionInterval: envDur("SUGGESTION_INTERVAL", 10*time.Second),
		SurfaceSuggestions: envBool("SURFACE_SUGGESTIONS", true),
	}
	if cfg.Env != "prod" {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev-jwt-secret"
		}
		if cfg.SessionSecret == "" {
			cfg.SessionSecret = "dev-session-secret"
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid value of cfg.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverFile, DriverMySQL:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.CancelPolicy {
	case CancelSoft, CancelHard:
	default:
		return fmt.Errorf("invalid CANCEL_POLICY %q", c.CancelPolicy)
	}
	if c.BasePrice < 0 || c.VIPSurcharge < 0 || c.TaxRate < 0 {
		return errors.New("ticket prices and tax rate must not be negative")
	}
	if c.MaxTickets < 1 {
		return fmt.Errorf("invalid MAX_TICKETS %d", c.MaxTickets)
	}
	if c.JWTSecret == "" {
		return errors.New("missing required env var: JWT_SECRET")
	}
	if c.SessionSecret == "" {
		return errors.New("missing required env var: SESSION_SECRET")
	}
	return nil
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
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

func envFloat(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
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
