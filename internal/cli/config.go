package cli

import "os"

// Config holds CLI configuration
type Config struct {
	// ServerURL is the base URL of the arena server
	ServerURL string
	// Output is the output format: text or json
	Output string
}

// DefaultConfig returns configuration from environment with defaults
func DefaultConfig() *Config {
	cfg := &Config{
		ServerURL: "http://localhost:8080",
		Output:    "text",
	}
	if v := os.Getenv("ARENA_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	return cfg
}
