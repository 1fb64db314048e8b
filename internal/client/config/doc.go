// Package config loads runtime configuration for the bidscurator CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML file: --config/-c, or config.yaml under Dir().
//  3. Environment variables with the BIDSCURATOR_ prefix, dots replaced by
//     underscores (BIDSCURATOR_API_KEY, BIDSCURATOR_LOGGING_LEVEL).
//  4. Command-line flags that were explicitly set.
//
// # YAML schema
//
//	host: fw.example.org
//	api_key: fw.example.org:0123456789
//	request_timeout: 30s
//	logging:
//	  level: INFO
//	  format: text
//
// Primary API
//
//   - type Config: host, API key, request timeout, logging
//   - func Load(path, flags): layered load, no validation
//   - func (*Config) Resolve(): derive Host from a "host:secret" key
//   - func (*Config) Validate(): struct-tag validation
package config
