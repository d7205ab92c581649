package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-r", "postgres", "-d", "db", "-p", "5", "-f", "/srv/files",
			"-s", "secret", "-t", "15", "-l", "zap", "-v",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:      "127.0.0.1:9090",
				DatabaseDriver:        "postgres",
				DatabaseDSN:           "db",
				DatabaseMaxOpenConns:  5,
				DataDir:               "/srv/files",
				SecretKey:             "secret",
				TokenValidityDuration: 15 * time.Minute,
				LogBackend:            "zap",
				Debug:                 true,
			}},
		{name: "Test2 foreign flags ignored", args: []string{"cmd", "-x", "1", "-a", ":1"},
			expected: &Config{EndpointAddrHTTP: ":1"}},
		{name: "Test3 bad int", args: []string{"cmd", "-p", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlagArgs_KeepsValidityWithoutFlag(t *testing.T) {
	for _, d := range []time.Duration{30 * time.Second, 90 * time.Second, time.Hour} {
		config := &Config{TokenValidityDuration: d}
		parseFlagArgs(config, nil)
		assert.Equal(t, d, config.TokenValidityDuration)
	}

	config := &Config{TokenValidityDuration: 90 * time.Second}
	parseFlagArgs(config, []string{"-t", "2"})
	assert.Equal(t, 2*time.Minute, config.TokenValidityDuration)
}

func TestLoadLayers_EnvSubMinuteValiditySurvivesFlags(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "30s")

	config := &Config{}
	config.LoadDefaults()
	parseEnv(config)
	parseFlagArgs(config, []string{"-a", ":1"})

	assert.Equal(t, 30*time.Second, config.TokenValidityDuration)
}
