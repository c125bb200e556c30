package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SITEBILL_DATABASE_DSN.
const EnvPrefix = "SITEBILL"

// RestConfig is the configuration of the REST API server
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Events   EventSettings    `mapstructure:"events"`
}

// Validate validates every nested settings block
func (c *RestConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	return validateAll(&c.Database, &c.Logger, &c.Events)
}

// CliConfig is the configuration of the command line tool
type CliConfig struct {
	Database  DatabaseSettings  `mapstructure:"database"`
	Logger    LoggerSettings    `mapstructure:"logger"`
	Events    EventSettings     `mapstructure:"events"`
	Provision ProvisionSettings `mapstructure:"provision"`
}

// Validate validates every nested settings block
func (c *CliConfig) Validate() error {
	return validateAll(&c.Database, &c.Logger, &c.Events, &c.Provision)
}

// InitializeRestConfig reads the REST configuration from path.
// The file must exist; environment variables override its values.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := newViper()
	setRestDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// InitializeCliConfig reads the CLI configuration. An empty path means
// defaults plus environment overrides only.
func InitializeCliConfig(path string) (*CliConfig, error) {
	v := newViper()
	setCliDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg CliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

type validatable interface {
	Validate() error
}

func validateAll(settings ...validatable) error {
	for _, s := range settings {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Defaults register every key so AutomaticEnv can resolve it during Unmarshal.
func setRestDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	setDatabaseDefaults(v)
	setLoggerDefaults(v)
	setEventDefaults(v)
}

func setCliDefaults(v *viper.Viper) {
	setDatabaseDefaults(v)
	setLoggerDefaults(v)
	setEventDefaults(v)

	p := DefaultProvisionSettings()
	v.SetDefault("provision.apt_get", p.AptGet)
	v.SetDefault("provision.pip", p.Pip)
	v.SetDefault("provision.system_packages", p.SystemPackages)
	v.SetDefault("provision.requirements_file", p.RequirementsFile)
	v.SetDefault("provision.user_scope", p.UserScope)
}

func setDatabaseDefaults(v *viper.Viper) {
	d := DefaultDatabaseSettings()
	v.SetDefault("database.type", d.Type)
	v.SetDefault("database.dsn", d.DSN)
	v.SetDefault("database.name", d.Name)
}

func setLoggerDefaults(v *viper.Viper) {
	l := DefaultLoggerSettings()
	v.SetDefault("logger.log_level", l.LogLevel)
	v.SetDefault("logger.log_type", l.LogType)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)
}

func setEventDefaults(v *viper.Viper) {
	e := DefaultEventSettings()
	v.SetDefault("events.enabled", e.Enabled)
	v.SetDefault("events.url", "")
	v.SetDefault("events.exchange", e.Exchange)
	v.SetDefault("events.routing_key", e.RoutingKey)
}
