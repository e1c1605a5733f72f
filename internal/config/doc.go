// Package config defines the configuration structure of the network store.
//
// Configuration is organized into logical sections. Defaults come from the `default`
// tags (creasty/defaults), constraints from the `validate` tags (go-playground/validator).
// The CLI binds every field to a flag and to a NETWORK_STORE_ environment variable.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Store          - Backing database
//	├── Migration      - Data migration workers
//	├── Auth           - Admin route authentication
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
//	┌──────────────────────────┬────────────────────────┬───────────────────────────────────────┐
//	│ Field                    │ Default                │ Description                           │
//	├──────────────────────────┼────────────────────────┼───────────────────────────────────────┤
//	│ Server.ServerMode        │ "dev"                  │ "dev" (gin debug) or "prod"           │
//	│ Server.HTTPPort          │ 8000                   │ HTTP listen port                      │
//	│ Store.DSN                │ "network-store.duckdb" │ DuckDB path, ":memory:", postgres://  │
//	│ Store.MaxInListSize      │ 1000                   │ Values per IN (...) before chunking   │
//	│ Migration.NumWorkers     │ 3                      │ Variants migrated concurrently        │
//	│ Auth.Enabled             │ false                  │ Require a JWT on admin routes         │
//	│ Auth.Secret              │ ""                     │ HS256 secret, required when enabled   │
//	│ LogFormat                │ "console"              │ "console" or "json"                   │
//	│ LogLevel                 │ "debug"                │ debug, info, warn, error              │
//	└──────────────────────────┴────────────────────────┴───────────────────────────────────────┘
//
// # Code Generation
//
// Functional options and DebugMap are generated by optgen:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Store Migration Auth
//
// Generated helpers include NewConfigurationWithOptionsAndDefaults, WithServer, WithStore,
// With<Field> for every nested field, and DebugMap.
//
// # Debug Logging
//
// DebugMap returns the configuration as a map suitable for structured logging. Fields
// tagged `debugmap:"hidden"` are masked:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
