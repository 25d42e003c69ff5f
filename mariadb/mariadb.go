// Package mariadb provides the MariaDB/MySQL placeholder binder for relq.
package mariadb

import "github.com/zoobzio/relq/internal/bind"

// Binder rebinds compiled text to MariaDB placeholders.
type Binder struct{}

// New creates a new MariaDB binder.
func New() *Binder {
	return &Binder{}
}

// Bind keeps `?` placeholders, which the MySQL wire protocol consumes natively.
func (*Binder) Bind(sql string) string {
	return bind.Rebind(sql, bind.Question)
}
