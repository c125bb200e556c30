package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Supported database types
const (
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
)

// DatabaseSettings selects the database backend and how to reach it.
// For sqlite the DSN is a file path (empty means in-memory); for postgres it
// is a key/value connection string without dbname, which Name supplies.
type DatabaseSettings struct {
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`
	DSN  string `mapstructure:"dsn"`
	Name string `mapstructure:"name" validate:"omitempty,max=63"`
}

// Name is interpolated into CREATE/DROP DATABASE statements.
var databaseNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DefaultDatabaseSettings returns a sqlite database file in the working directory.
func DefaultDatabaseSettings() DatabaseSettings {
	return DatabaseSettings{
		Type: SqliteDbType,
		DSN:  "sitebill.db",
	}
}

// Validate checks that the settings describe a reachable database
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	if s.Type == PostgresDbType && s.DSN == "" {
		return fmt.Errorf("dsn is required for %s databases", PostgresDbType)
	}

	if s.Name != "" && !databaseNamePattern.MatchString(s.Name) {
		return fmt.Errorf("invalid database name %q", s.Name)
	}

	return nil
}
