package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultRequirementsFile is read from the working directory by the pip step.
const DefaultRequirementsFile = "requirements.txt"

// ProvisionSettings configures the environment bootstrap commands.
type ProvisionSettings struct {
	AptGet           string   `mapstructure:"apt_get" validate:"required"`
	Pip              string   `mapstructure:"pip" validate:"required"`
	SystemPackages   []string `mapstructure:"system_packages" validate:"required,min=1,dive,required"`
	RequirementsFile string   `mapstructure:"requirements_file" validate:"required"`
	UserScope        bool     `mapstructure:"user_scope"`
}

// DefaultProvisionSettings installs sqlite3 and user-scoped Python packages.
func DefaultProvisionSettings() ProvisionSettings {
	return ProvisionSettings{
		AptGet:           "apt-get",
		Pip:              "pip",
		SystemPackages:   []string{"sqlite3"},
		RequirementsFile: DefaultRequirementsFile,
		UserScope:        true,
	}
}

// Validate checks that every command of the bootstrap plan is named
func (s *ProvisionSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ProvisionSettings: %w", err)
	}

	return nil
}
