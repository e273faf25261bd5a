// Package gorm provides GORM-based database operations for promptverse.
package gorm

import (
	"database/sql"
	"errors"
	"math"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Pagination bounds.
const (
	DefaultPageSize  = 40
	MaxPageSize      = 200
	DefaultListLimit = 50
	MaxListLimit     = 200
	maxPage          = math.MaxInt32
)

// ClampPage forces page and pageSize into their valid ranges.
// Zero or negative values fall back to the first page and the default size.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ClampLimit forces a recent/popular limit into [1, MaxListLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// nullString converts a string to sql.NullString.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// escapeLike escapes LIKE wildcards so user input matches literally.
// Queries using it must declare ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// isUniqueViolation reports whether err is a primary key or unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
