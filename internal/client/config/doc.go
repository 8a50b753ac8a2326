// Package config loads runtime configuration for the Micro Notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and MN_* environment variables;
//     variables already present in the process environment win over .env.
//  3. Optional config file selected with -c/--config or MN_CONFIG. The format
//     follows the extension: .yaml/.yml is YAML, anything else JSON.
//  4. Command-line flags, but only those explicitly set.
//
// Supported flags
//
//	-c, --config string      config file
//	    --users-url string   base URL of the Users service
//	    --notes-url string   base URL of the Notes service
//	    --data-dir string    directory holding micronotes.db
//	    --timeout duration   per-request timeout
//	    --log-level string   debug|info|warn|error
//	    --log-file string    also write JSON logs to this file
//	    --email string       email prefilled in the login prompt
//	    --proxy-addr string  listen address of the dev proxy
//	    --users-upstream     dev proxy target for /api/users
//	    --notes-upstream     dev proxy target for /api/notes
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "users_base_url": "http://127.0.0.1:5173/api/users",
//	  "notes_base_url": "http://127.0.0.1:5173/api/notes",
//	  "request_timeout": "10s",
//	  "log_level": "debug"
//	}
package config
