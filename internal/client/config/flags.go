package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows. Unknown flags are left
// to other parsers; malformed values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenStorePath, "s", cfg.TokenStorePath, "SQLite file for the persisted session")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
