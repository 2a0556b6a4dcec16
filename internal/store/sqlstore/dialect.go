// Package sqlstore implements store.Store on top of database/sql. The
// postgres and sqlite packages supply a Dialect and an opened *sql.DB.
package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures the few places where the SQL backends disagree.
type Dialect interface {
	// Name identifies the backend in logs and errors.
	Name() string
	// Rebind rewrites '?' placeholders into the backend's native form.
	Rebind(query string) string
	// IsDuplicate reports whether err is a unique or primary key violation.
	IsDuplicate(err error) bool
	// CreateView returns the statement prefix that (re)creates a view.
	CreateView() string
}

// QuestionRebind leaves '?' placeholders untouched.
func QuestionRebind(query string) string { return query }

// DollarRebind rewrites '?' placeholders into $1, $2, ...
func DollarRebind(query string) string {
	n := strings.Count(query, "?")
	if n == 0 {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + n*2)
	idx := 1
	for _, r := range query {
		if r == '?' {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(idx))
			idx++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
