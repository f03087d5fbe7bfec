package config

import "os"

// Environment variables recognized by the server.
const (
	EnvListenAddr  = "LISTEN_ADDR"
	EnvDatabaseDSN = "DATABASE_URL"
	EnvAdminToken  = "ADMIN_TOKEN"
)

// parseEnv overlays Config fields from the process environment. Unset
// variables leave the current value untouched.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		config.ListenAddr = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvAdminToken); ok {
		config.AdminToken = v
	}
}
