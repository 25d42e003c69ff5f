package relq

import "fmt"

// Field references a column. The column may live in a lookup table, in which
// case Lookup names that table and the field must be resolved in place by a
// FieldResolver before rendering.
type Field struct {
	Name   string
	Table  string // optional table name or alias prefix
	Lookup string // lookup table requiring join resolution; cleared on resolve
	As     string // optional explicit alias
}

// F creates a field reference.
func F(name string) *Field {
	return &Field{Name: name}
}

// WithTable sets the table or alias prefix.
func (f *Field) WithTable(tableOrAlias string) *Field {
	f.Table = tableOrAlias
	return f
}

// WithLookup marks the field as living in a lookup table.
func (f *Field) WithLookup(table string) *Field {
	f.Lookup = table
	return f
}

// WithAlias sets an explicit alias for the select list.
func (f *Field) WithAlias(alias string) *Field {
	f.As = alias
	return f
}

func (f *Field) Render() (string, error) {
	if f.Lookup != "" {
		return "", fmt.Errorf("unresolved lookup field %q (lookup table %q)", f.Name, f.Lookup)
	}
	quoted := quoteIdentifier(f.Name)
	if f.Table != "" {
		return renderPrefix(f.Table) + "." + quoted, nil
	}
	return quoted, nil
}

func (f *Field) Canonical() string {
	switch {
	case f.Lookup != "":
		return f.Lookup + "." + f.Name
	case f.Table != "":
		return f.Table + "." + f.Name
	default:
		return f.Name
	}
}

func (*Field) Simple() bool { return true }

func (f *Field) WalkFields(fn func(*Field) error) error { return fn(f) }

func (*Field) AppendValues(vals []any) []any { return vals }

func (f *Field) AliasName() string { return f.As }

// isTableAlias checks for a single-lowercase-letter table alias.
func isTableAlias(s string) bool {
	return len(s) == 1 && s[0] >= 'a' && s[0] <= 'z'
}

// Single-letter aliases render bare, table names are quoted.
func renderPrefix(tableOrAlias string) string {
	if isTableAlias(tableOrAlias) {
		return tableOrAlias
	}
	return quoteIdentifier(tableOrAlias)
}
