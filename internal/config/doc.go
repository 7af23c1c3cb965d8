// Package config loads tote's startup configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. The TOML file at the given path, or ~/.config/tote/config.toml
//  3. A .env file in the working directory, loaded into the environment
//  4. TOTE_API_URL, TOTE_INIT_DATA, TOTE_LOG_LEVEL, TOTE_METRICS_ADDR
//
// A missing config file is not an error. Blank values fall back to defaults.
//
// # TOML Format
//
//	api_url = "http://localhost:3000/api"
//	init_data = "query_id=...&user=...&auth_date=...&hash=..."
//	init_data_file = "~/.config/tote/init-data"
//	request_timeout = "10s"     # "0" or empty keeps the transport default
//	refresh_interval = "15s"    # "0" disables background refresh
//	log_file = "~/.local/state/tote/tote.log"
//	log_level = "info"
//	metrics_addr = "127.0.0.1:9464"
//
// init_data is the signed identity blob the chat platform hands to a Mini
// App. It is sent verbatim on every request. init_data_file is read only when
// init_data is empty.
//
// # Validation
//
// Load rejects unparsable TOML, bad durations, negative durations, unknown log
// levels, and api_url values without an http(s) scheme and host.
package config
