// Package config loads runtime configuration for the gophnotes client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional .env file in the working directory, exported into the
//     environment without overriding variables that are already set.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Environment variables with the GOPHNOTES_ prefix.
//  5. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the notes service
//	-m          use the in-memory mock service
//	-d string   path of the local SQLite database
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "2s"
// or integer nanoseconds. Every key is optional:
//
//	{
//	  "server_base_url": "http://localhost:8080/api",
//	  "request_timeout": "10s",
//	  "use_mock": false,
//	  "mock_latency": true,
//	  "db_path": "gophnotes.db",
//	  "autosave_delay": "2s",
//	  "recent_window": "72h",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "http_debug": false
//	}
//
// # Environment
//
//	GOPHNOTES_SERVER_BASE_URL, GOPHNOTES_REQUEST_TIMEOUT, GOPHNOTES_USE_MOCK,
//	GOPHNOTES_MOCK_LATENCY, GOPHNOTES_DB_PATH, GOPHNOTES_AUTOSAVE_DELAY,
//	GOPHNOTES_RECENT_WINDOW, GOPHNOTES_LOG_LEVEL, GOPHNOTES_LOG_FORMAT,
//	GOPHNOTES_HTTP_DEBUG
package config
