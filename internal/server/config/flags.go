package config

import (
	"flag"
	"os"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-t string   admin shared-secret token
//
// Flags win over environment variables and defaults.
func parseFlags(config *Config) {
	applyFlags(config, os.Args[1:])
}

func applyFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("a", "", "HTTP bind address")
	dsn := fs.String("d", "", "PostgreSQL DSN")
	token := fs.String("t", "", "admin shared-secret token")

	// Unknown flags are a startup mistake worth surfacing, but a parse error
	// must not take precedence over otherwise valid configuration.
	_ = fs.Parse(args)

	if *addr != "" {
		config.ListenAddr = *addr
	}
	if *dsn != "" {
		config.DatabaseDSN = *dsn
	}
	if *token != "" {
		config.AdminToken = *token
	}
}
