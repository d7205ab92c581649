package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/simplefilehost/internal/flagx"
	"github.com/dmitrijs2005/simplefilehost/internal/timex"
)

// JsonConfig is the DTO for JSON configuration files. Durations use
// timex.Duration so both "90m" and integer nanoseconds are accepted.
// Pointer fields distinguish "absent" from zero values.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	DatabaseDriver        string          `json:"database_driver"`
	DatabaseDSN           string          `json:"database_dsn"`
	DatabaseMaxOpenConns  int             `json:"database_max_open_conns"`
	DataDir               string          `json:"data_dir"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	LogBackend            string          `json:"log_backend"`
	Debug                 *bool           `json:"debug"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field it sets into config. Unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DataDir, c.DataDir)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogBackend, c.LogBackend)
	if c.DatabaseMaxOpenConns > 0 {
		config.DatabaseMaxOpenConns = c.DatabaseMaxOpenConns
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
