// Package sqlite provides the SQLite placeholder binder for relq.
package sqlite

import "github.com/zoobzio/relq/internal/bind"

// Binder rebinds compiled text to SQLite placeholders.
type Binder struct{}

// New creates a new SQLite binder.
func New() *Binder {
	return &Binder{}
}

// Bind keeps `?` placeholders, which SQLite consumes natively. The text is
// still scanned so quoted regions are treated the same across dialects.
func (*Binder) Bind(sql string) string {
	return bind.Rebind(sql, bind.Question)
}
