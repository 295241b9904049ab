package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend     string        `json:"backend" yaml:"backend"`
	DatabaseURL string        `json:"database_url" yaml:"database_url"`
	DataDir     string        `json:"data_dir" yaml:"data_dir"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// Supported backend names.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrTimeoutInvalid = errors.New("timeout must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendPostgres: true,
	BackendSQLite:   true,
	BackendMemory:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
//
// DatabaseURL is deliberately not checked: an empty or unreachable connection
// string is handed to the driver as is, and failures show up per test case.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	return nil
}
