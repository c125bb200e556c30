package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EventSettings configures publication of invoice status changes to an AMQP broker.
// When disabled, events are dropped.
type EventSettings struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`
	Exchange   string `mapstructure:"exchange" validate:"required_if=Enabled true"`
	RoutingKey string `mapstructure:"routing_key"`
}

// DefaultEventSettings returns events disabled with the conventional exchange name.
func DefaultEventSettings() EventSettings {
	return EventSettings{
		Enabled:    false,
		Exchange:   "sitebill.invoices",
		RoutingKey: "invoice.status",
	}
}

// Validate checks the broker coordinates when events are enabled
func (s *EventSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EventSettings: %w", err)
	}

	return nil
}
