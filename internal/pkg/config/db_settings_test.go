//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabaseSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *DatabaseSettings
		expectedError bool
	}{
		{
			name:          "sqlite file",
			settings:      &DatabaseSettings{Type: SqliteDbType, DSN: "sitebill.db"},
			expectedError: false,
		},
		{
			name:          "sqlite in-memory without dsn",
			settings:      &DatabaseSettings{Type: SqliteDbType},
			expectedError: false,
		},
		{
			name: "postgres with name",
			settings: &DatabaseSettings{
				Type: PostgresDbType,
				DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
				Name: "sitebill_test",
			},
			expectedError: false,
		},
		{
			name:          "postgres missing dsn",
			settings:      &DatabaseSettings{Type: PostgresDbType, Name: "sitebill"},
			expectedError: true,
		},
		{
			name:          "missing type",
			settings:      &DatabaseSettings{DSN: "sitebill.db"},
			expectedError: true,
		},
		{
			name:          "unsupported type",
			settings:      &DatabaseSettings{Type: "mysql", DSN: "user:password@tcp(localhost:3306)/dbname"},
			expectedError: true,
		},
		{
			name: "name with statement characters",
			settings: &DatabaseSettings{
				Type: PostgresDbType,
				DSN:  "host=localhost",
				Name: "x; DROP TABLE sites",
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
