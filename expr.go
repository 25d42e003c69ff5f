package relq

import "strings"

// Expr is the polymorphic expression node consumed by the compiler.
//
// Render produces the expression's direct SQL, never a generated alias.
// Canonical produces the deterministic unquoted text used as the aliasing
// dedup key: two structurally distinct nodes with identical canonical text
// intentionally collapse onto one alias.
type Expr interface {
	// Render returns the direct SQL rendering without any generated alias.
	Render() (string, error)

	// Canonical returns the deterministic textual form used for alias deduplication.
	Canonical() string

	// Simple reports whether the expression never needs a generated alias
	// (bare columns and literals).
	Simple() bool

	// WalkFields visits every contained field reference, in place.
	WalkFields(fn func(*Field) error) error

	// AppendValues appends the contained non-null literal values in
	// left-to-right order.
	AppendValues(vals []any) []any

	// AliasName returns the explicit alias carried by the expression, or "".
	AliasName() string
}

// quoteIdentifier quotes an identifier to handle reserved words and special
// characters. Existing double quotes are escaped by doubling them.
func quoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

// Value is a literal leaf. A nil payload is the null marker: it renders as
// NULL and binds nothing. A non-nil payload renders as a `?` placeholder and
// binds exactly one value.
type Value struct {
	Data any
}

// V creates a literal value leaf.
func V(data any) *Value {
	return &Value{Data: data}
}

// NullValue creates a null literal leaf.
func NullValue() *Value {
	return &Value{}
}

// IsNull reports whether the leaf holds the null marker.
func (v *Value) IsNull() bool { return v.Data == nil }

func (v *Value) Render() (string, error) {
	if v.IsNull() {
		return "NULL", nil
	}
	return "?", nil
}

func (v *Value) Canonical() string {
	if v.IsNull() {
		return "NULL"
	}
	return "?"
}

func (*Value) Simple() bool { return true }

func (*Value) WalkFields(func(*Field) error) error { return nil }

func (v *Value) AppendValues(vals []any) []any {
	if v.IsNull() {
		return vals
	}
	return append(vals, v.Data)
}

func (*Value) AliasName() string { return "" }
