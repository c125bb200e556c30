package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitebill/sitebill/internal/domain/billing"

	"gorm.io/gorm"
)

// translateError wraps a GORM error with the matching billing sentinel.
// Errors without a domain meaning are wrapped unchanged.
func translateError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", action, billing.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated), isConstraintMessage(err):
		return fmt.Errorf("%s: %w: %v", action, billing.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

// isConstraintMessage catches constraint failures the dialect did not translate.
func isConstraintMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "duplicate key value")
}
