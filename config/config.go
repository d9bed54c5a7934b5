package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port int

	DbConn     string
	TestDbConn string

	SessionStore          string
	SessionDuration       time.Duration
	SessionActiveDuration time.Duration
	CookieSecure          bool
	RedisAddress          string
	RedisPassword         string

	UploadDir          string
	StaticDir          string
	CorsAllowedOrigins []string
	// only set behind a reverse proxy that overwrites X-Forwarded-For,
	// otherwise clients pick their own address for the login throttle
	TrustProxyHeaders bool

	LogLevel log.Level
}

// Load reads an optional .env file from the working directory and then the
// process environment. Values already present in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		Port:                  8080,
		SessionStore:          SessionStoreMemory,
		SessionDuration:       30 * time.Minute,
		SessionActiveDuration: 15 * time.Minute,
		RedisAddress:          "localhost:6379",
		UploadDir:             "public/images/uploaded",
		StaticDir:             "public/static",
		CorsAllowedOrigins:    []string{"*"},
		LogLevel:              log.InfoLevel,
	}

	var err error
	if port := getenv("PORT"); port != "" {
		if c.Port, err = strconv.Atoi(port); err != nil {
			return c, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
	}

	c.DbConn = getenv("DB_CONN")
	if c.DbConn == "" {
		c.DbConn = postgresConnFromParts(getenv)
	}
	c.TestDbConn = getenv("TEST_DB_CONN")

	if store := strings.ToLower(getenv("SESSION_STORE")); store != "" {
		if store != SessionStoreMemory && store != SessionStoreRedis {
			return c, fmt.Errorf("unknown SESSION_STORE %q", store)
		}
		c.SessionStore = store
	}
	if d := getenv("SESSION_DURATION"); d != "" {
		if c.SessionDuration, err = time.ParseDuration(d); err != nil {
			return c, fmt.Errorf("invalid SESSION_DURATION %q: %w", d, err)
		}
	}
	if d := getenv("SESSION_ACTIVE_DURATION"); d != "" {
		if c.SessionActiveDuration, err = time.ParseDuration(d); err != nil {
			return c, fmt.Errorf("invalid SESSION_ACTIVE_DURATION %q: %w", d, err)
		}
	}
	if secure := getenv("COOKIE_SECURE"); secure != "" {
		if c.CookieSecure, err = strconv.ParseBool(secure); err != nil {
			return c, fmt.Errorf("invalid COOKIE_SECURE %q: %w", secure, err)
		}
	}
	if trust := getenv("TRUST_PROXY_HEADERS"); trust != "" {
		if c.TrustProxyHeaders, err = strconv.ParseBool(trust); err != nil {
			return c, fmt.Errorf("invalid TRUST_PROXY_HEADERS %q: %w", trust, err)
		}
	}
	if addr := getenv("REDIS_ADDRESS"); addr != "" {
		c.RedisAddress = addr
	}
	c.RedisPassword = getenv("REDIS_PASSWORD")

	if dir := getenv("UPLOAD_DIR"); dir != "" {
		c.UploadDir = dir
	}
	if dir := getenv("STATIC_DIR"); dir != "" {
		c.StaticDir = dir
	}
	if origins := getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CorsAllowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CorsAllowedOrigins = append(c.CorsAllowedOrigins, origin)
			}
		}
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		if c.LogLevel, err = log.ParseLevel(level); err != nil {
			return c, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
	}
	return c, nil
}

// the hosted database this replaced was configured through separate
// POSTGRESQL_* variables so they are still accepted when DB_CONN is not set
func postgresConnFromParts(getenv func(string) string) string {
	host := getenv("POSTGRESQL_HOSTNAME")
	if host == "" {
		return ""
	}
	port := getenv("POSTGRESQL_PORT")
	if port == "" {
		port = "5432"
	}
	sslMode := getenv("POSTGRESQL_SSLMODE")
	if sslMode == "" {
		sslMode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getenv("POSTGRESQL_USERNAME"), getenv("POSTGRESQL_PASSWORD")),
		Host:     host + ":" + port,
		Path:     "/" + getenv("POSTGRESQL_DATABASE"),
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}
