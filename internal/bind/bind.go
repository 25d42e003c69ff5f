// Package bind rebinds the compiler's backend-agnostic `?` placeholders to a
// backend's positional convention.
package bind

import (
	"strconv"
	"strings"
)

// Placeholder formats the placeholder for a 1-based bind position.
type Placeholder func(index int) string

// Question keeps `?` placeholders (SQLite, MariaDB).
func Question(int) string { return "?" }

// Dollar produces `$N` placeholders (PostgreSQL).
func Dollar(index int) string { return "$" + strconv.Itoa(index) }

// At produces `@pN` placeholders (SQL Server).
func At(index int) string { return "@p" + strconv.Itoa(index) }

// Rebind rewrites every `?` outside quoted regions. Single-quoted literals
// and double-quoted identifiers are passed through untouched, including
// their doubled-quote escapes.
func Rebind(sql string, ph Placeholder) string {
	var out strings.Builder
	out.Grow(len(sql))

	index := 0
	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case quote != 0:
			out.WriteByte(ch)
			if ch == quote {
				// A doubled quote is an escape, not a terminator.
				if i+1 < len(sql) && sql[i+1] == quote {
					out.WriteByte(sql[i+1])
					i++
				} else {
					quote = 0
				}
			}
		case ch == '\'' || ch == '"':
			quote = ch
			out.WriteByte(ch)
		case ch == '?':
			index++
			out.WriteString(ph(index))
		default:
			out.WriteByte(ch)
		}
	}
	return out.String()
}
