// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file with viper, overridden by SITEBILL_*
// environment variables, and validated before use. Each concern (database,
// logging, provisioning, events) owns a settings struct with its own Validate.
package config
