// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. STOREFRONT_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string     storage backend: sqlite, nutsdb or memory
//	-d string     SQLite file or nutsdb directory
//	-l string     log level (debug, info, warn, error)
//	-f string     log format (text, json, zap)
//	-r duration   recent registrations window
//
// # JSON schema
//
//	{
//	  "backend": "sqlite",
//	  "data_path": "storefront.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "recent_window": "720h"
//	}
//
// # Environment
//
//	STOREFRONT_BACKEND, STOREFRONT_DATA_PATH, STOREFRONT_LOG_LEVEL,
//	STOREFRONT_LOG_FORMAT, STOREFRONT_RECENT_WINDOW
package config
