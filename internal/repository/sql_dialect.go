package repository

import (
	"strings"

	"gorm.io/gorm"
)

// dbDialectName reports the dialect name, defaulting to sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperator picks the case-insensitive LIKE variant for the dialect.
func likeOperator(db *gorm.DB) string {
	return likeOperatorByDialect(dbDialectName(db))
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// monthBucketExpr builds a month-grouping expression ("MM/YY") that
// works on both sqlite and postgres.
func monthBucketExpr(db *gorm.DB, column string) string {
	return monthBucketExprByDialect(dbDialectName(db), column)
}

func monthBucketExprByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "to_char(" + column + ", 'MM/YY')"
	default:
		return "strftime('%m/%y', " + column + ")"
	}
}
