// Package mssql provides the SQL Server placeholder binder for relq.
package mssql

import "github.com/zoobzio/relq/internal/bind"

// Binder rebinds compiled text to SQL Server's `@pN` placeholders.
type Binder struct{}

// New creates a new SQL Server binder.
func New() *Binder {
	return &Binder{}
}

// Bind rewrites `?` placeholders to `@p1`, `@p2`, ...
func (*Binder) Bind(sql string) string {
	return bind.Rebind(sql, bind.At)
}
