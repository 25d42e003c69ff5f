// Package postgres provides the PostgreSQL placeholder binder for relq.
package postgres

import "github.com/zoobzio/relq/internal/bind"

// Binder rebinds compiled text to PostgreSQL's `$N` placeholders.
type Binder struct{}

// New creates a new PostgreSQL binder.
func New() *Binder {
	return &Binder{}
}

// Bind rewrites `?` placeholders to `$1`, `$2`, ...
func (*Binder) Bind(sql string) string {
	return bind.Rebind(sql, bind.Dollar)
}
