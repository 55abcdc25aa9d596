// Package cli is the interactive command-line client of the school backend.
//
// App wires configuration, the optional SQLite session store, the
// authenticated HTTP client and the domain services, then runs a REPL
// (App.Run) until the user types exit or input ends. Every failed command
// prints its error class, e.g. "authentication expired", so a user knows
// whether to retry, log in again or ask an administrator.
package cli
