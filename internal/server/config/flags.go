package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/flagx"
)

// serverFlags are the short flags this package owns.
var serverFlags = []string{"-a", "-r", "-d", "-p", "-f", "-s", "-t", "-l", "-v"}

// ValueFlags lists the flags, JSON config ones included, that consume the
// next argument. Commands use it to find their positional arguments.
var ValueFlags = []string{"-a", "-r", "-d", "-p", "-f", "-s", "-t", "-l", "-c", "-config"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., "localhost:8080")
//	-r string   database driver: sqlite | postgres
//	-d string   database DSN
//	-p int      max open database connections
//	-f string   data directory
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-l string   log backend: slog | zap
//	-v          debug logging
//
// os.Args is first filtered with flagx.FilterArgs so subcommands and other
// flags do not collide.
func parseFlags(config *Config) {
	parseFlagArgs(config, os.Args[1:])
}

func parseFlagArgs(config *Config, argv []string) {
	args := flagx.FilterArgs(argv, serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "r", config.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.DatabaseMaxOpenConns, "p", config.DatabaseMaxOpenConns, "max open database connections")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "data directory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")
	fs.BoolVar(&config.Debug, "v", config.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides when given; its minute granularity would truncate
	// a sub-minute JSON or env value.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
