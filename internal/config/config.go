package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
type Config struct {
	Env          string // application environment ("development" gates stack traces)
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign bearer tokens

	DBMaxOpenConns   int // connection pool ceiling
	DBMaxIdleConns   int // idle connections kept around
	DBConnMaxLifeMin int // connection lifetime in minutes
	TokenTTLDays int    // bearer token time-to-live in days
	BcryptCost   int    // bcrypt cost for password hashing
	UploadDir    string // root directory for uploaded files
	CacheTTLSec  int    // response cache TTL in seconds
	RabbitURL    string // AMQP broker URL (empty disables event publishing)
}

// Load reads configuration from the environment, first merging a .env file
// when one is present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),

		DBMaxOpenConns:   intOr("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   intOr("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifeMin: intOr("DB_CONN_MAX_LIFE_MIN", 30),

		TokenTTLDays: intOr("TOKEN_TTL_DAYS", 30),
		BcryptCost:   intOr("BCRYPT_COST", 10),
		UploadDir:    strOr("UPLOAD_DIR", "uploads"),
		CacheTTLSec:  intOr("CACHE_TTL_SEC", 60),
		RabbitURL:    os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func strOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
