package persistence

import (
	"fmt"
	"strings"

	"github.com/sitebill/sitebill/internal/domain/billing"

	"gorm.io/gorm"
)

// applyPage adds ordering and pagination. sortBy has already been checked
// against the query's column whitelist; rows default to id order so pages
// stay stable.
func applyPage(dbQuery *gorm.DB, page billing.Page, sortBy string) *gorm.DB {
	if sortBy == "" {
		sortBy = "id"
	}
	order := page.SortOrder
	if order == "" {
		order = billing.SortAsc
	}
	dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", sortBy, order))
	if sortBy != "id" {
		dbQuery = dbQuery.Order("id asc")
	}

	if page.Limit > 0 {
		dbQuery = dbQuery.Limit(page.Limit)
	}
	if page.Offset > 0 {
		dbQuery = dbQuery.Offset(page.Offset)
	}
	return dbQuery
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// whereContains keeps rows whose column contains value as a literal
// substring. Matching is case-insensitive on both sqlite and postgres; it
// folds ASCII letters only on sqlite.
func whereContains(dbQuery *gorm.DB, column, value string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
	return dbQuery.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), pattern)
}
