// Package config handles configuration for the server and admin processes,
// including defaults, a JSON overlay, environment variables and
// command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime settings shared by the server and the admin CLI.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver: "sqlite" (default) or "postgres"/"pgx".
//   - DatabaseDSN: driver DSN; empty means <DataDir>/database.sqlite.db.
//   - DatabaseMaxOpenConns: connection pool ceiling.
//   - DataDir: root for the SQLite file and the blobs/ directory.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: bearer token lifetime.
//   - LogBackend / Debug: logger selection and level.
type Config struct {
	EndpointAddrHTTP      string        `env:"SERVER_ADDRESS"`
	DatabaseDriver        string        `env:"DATABASE_DRIVER"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	DatabaseMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS"`
	DataDir               string        `env:"DATA_DIR"`
	SecretKey             string        `env:"SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_VALIDITY"`
	LogBackend            string        `env:"LOG_BACKEND"`
	Debug                 bool          `env:"DEBUG"`
}

// LoadDefaults populates Config with development defaults. SecretKey stays
// empty so the server can detect it and generate a throwaway one.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = "localhost:8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = ""
	c.DatabaseMaxOpenConns = 10
	c.DataDir = "data"
	c.SecretKey = ""
	c.TokenValidityDuration = time.Hour
	c.LogBackend = "slog"
	c.Debug = false
}

// String renders the config with the secret and any DSN credentials masked.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "addr=%s driver=%s dsn=%s max_conns=%d data_dir=%s",
		c.EndpointAddrHTTP, c.DatabaseDriver, maskDSN(c.DatabaseDSN), c.DatabaseMaxOpenConns, c.DataDir)
	if c.SecretKey != "" {
		sb.WriteString(" secret=********")
	} else {
		sb.WriteString(" secret=(empty)")
	}
	fmt.Fprintf(&sb, " token_validity=%s log=%s debug=%v", c.TokenValidityDuration, c.LogBackend, c.Debug)
	return sb.String()
}

func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "********" + dsn[at:]
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (.env included) and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
