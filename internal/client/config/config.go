package config

import "time"

// Config holds runtime settings for the school CLI.
type Config struct {
	// BaseURL of the backend API, without a trailing slash.
	BaseURL        string
	RequestTimeout time.Duration
	// TokenStorePath is the SQLite file that keeps the session between
	// runs. Empty keeps tokens in memory only.
	TokenStorePath string
	Verbose        bool
}

func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 30 * time.Second
	c.TokenStorePath = ""
	c.Verbose = false
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
