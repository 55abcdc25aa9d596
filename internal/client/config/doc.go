// Package config loads runtime configuration for the school CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults.
//  2. JSON file named by -c/-config or the SCHOOL_CLIENT_CONFIG variable.
//  3. Command-line flags.
//
// Flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-s string   SQLite file for the persisted session (empty: memory only)
//
// JSON
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "30s",
//	  "token_store_path": "/home/me/.school/session.db",
//	  "verbose": true
//	}
package config
