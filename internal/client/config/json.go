package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/schoolauth/internal/flagx"
	"github.com/dmitrijs2005/schoolauth/internal/timex"
)

const configEnvKey = "SCHOOL_CLIENT_CONFIG"

type jsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	TokenStorePath string         `json:"token_store_path"`
	Verbose        *bool          `json:"verbose"`
}

// parseJSON overlays cfg with the fields present in the JSON file.
// Read or decode errors panic.
func parseJSON(cfg *Config) {
	path := flagx.ConfigPath(configEnvKey)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenStorePath != "" {
		cfg.TokenStorePath = jc.TokenStorePath
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
