package repository

import (
	"strings"

	"gorm.io/gorm"
)

// PageSize is the fixed page size for every list endpoint.
const PageSize = 10

// applyPage applies page-number based pagination (1-based).
func applyPage(db *gorm.DB, page int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	return db.Offset((page - 1) * PageSize).Limit(PageSize)
}

// applyOrdering applies a client-supplied ordering parameter against a
// whitelist of sortable columns. A leading '-' requests descending order,
// mirroring the query convention the frontend already speaks. Unknown fields
// fall back to the default ordering.
func applyOrdering(db *gorm.DB, ordering, def string, allowed map[string]string) *gorm.DB {
	if ordering == "" {
		return db.Order(def)
	}
	desc := false
	if strings.HasPrefix(ordering, "-") {
		desc = true
		ordering = ordering[1:]
	}
	column, ok := allowed[ordering]
	if !ok {
		return db.Order(def)
	}
	if desc {
		return db.Order(column + " DESC")
	}
	return db.Order(column)
}
