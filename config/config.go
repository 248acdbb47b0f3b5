// Package config reads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yeremiapane/restaurant-orders/utils"
)

const (
	defaultPort           = "8080"
	defaultDatabaseDriver = "sqlite"
	defaultSQLiteDSN      = "restaurant.db?_foreign_keys=on"
	defaultPostgresDSN    = "host=localhost user=postgres password=postgres dbname=restaurant port=5432 sslmode=disable"
	defaultMySQLDSN       = "root:root@tcp(127.0.0.1:3306)/restaurant?charset=utf8mb4&parseTime=True&loc=Local"
)

// AdminCredentials are the operator-supplied credentials for the first
// administrator account.
type AdminCredentials struct {
	Username string
	Email    string
	Password string
}

// Complete reports whether every field is set.
func (a AdminCredentials) Complete() bool {
	return a.Username != "" && a.Email != "" && a.Password != ""
}

type Config struct {
	Port    string
	GinMode string

	DatabaseDriver string
	DatabaseDSN    string
	MaxOpenConns   int
	MaxIdleConns   int

	SessionSecret []byte
	SessionSecure bool

	MenuFile string
	Admin    AdminCredentials

	LoginRatePerMinute int
}

// Load reads .env (when present) and builds a Config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf(".env not loaded: %v", err)
	}

	cfg := &Config{
		Port:               get("PORT", defaultPort),
		GinMode:            get("GIN_MODE", ""),
		DatabaseDriver:     databaseDriver(),
		MaxOpenConns:       getInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:       getInt("DB_MAX_IDLE_CONNS", 5),
		SessionSecure:      getBool("SESSION_SECURE", false),
		MenuFile:           get("MENU_FILE", ""),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),
		Admin: AdminCredentials{
			Username: get("ADMIN_USERNAME", ""),
			Email:    get("ADMIN_EMAIL", ""),
			Password: get("ADMIN_PASSWORD", ""),
		},
	}
	cfg.DatabaseDSN = get("DATABASE_DSN", defaultDSN(cfg.DatabaseDriver))

	secret := get("SESSION_SECRET", "")
	if secret == "" {
		utils.InfoLogger.Warn("SESSION_SECRET not set, using a random per-process secret; sessions will not survive a restart")
		secret = randomSecret()
	}
	cfg.SessionSecret = []byte(secret)

	return cfg
}

func databaseDriver() string {
	driver := strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver))
	switch driver {
	case "sqlite", "postgres", "mysql":
		return driver
	default:
		utils.InfoLogger.Warnf("unsupported DB_DRIVER %q, falling back to %s", driver, defaultDatabaseDriver)
		return defaultDatabaseDriver
	}
}

func defaultDSN(driver string) string {
	switch driver {
	case "postgres":
		return defaultPostgresDSN
	case "mysql":
		return defaultMySQLDSN
	default:
		return defaultSQLiteDSN
	}
}

func get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.InfoLogger.Warnf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.InfoLogger.Warnf("invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("config: cannot read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}
