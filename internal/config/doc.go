// Package config loads runtime configuration for the folio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML or JSON file named by --config/-c or FOLIO_CONFIG.
//  3. Environment: FOLIO_* variables, falling back to a .env file.
//  4. Command-line flags that were explicitly set.
//
// # File schema
//
//	api_url: http://localhost:5000/api
//	share_origin: http://localhost:5173
//	data_dir: .folio
//	db_file: folio.db
//	timeout: 15s
//	ephemeral: false
//	log:
//	  driver: slog   # or zap
//	  level: warn
//
// JSON with the same keys is accepted too.
package config
