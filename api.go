// Package relq compiles a structured query AST into parameterized SQL.
//
// The package takes an already-parsed query representation (ordered select
// expressions, a filter tree, optional grouping/having/ordering, an option
// store, and table context) and produces SQL text with positional `?`
// placeholders plus the ordered list of values to bind against them.
//
// # Basic Usage
//
// Queries are assembled with the fluent builder and compiled once:
//
//	query, err := relq.From(relq.T("users", "u")).
//		Fields(relq.F("id"), relq.F("username")).
//		Where(relq.C(relq.F("active"), relq.EQ, relq.V(true))).
//		OrderBy(relq.F("username"), relq.ASC).
//		Take(10).
//		Build()
//
//	compiled, err := relq.Compile(query, nil)
//	// compiled.Text:   SELECT "id", "username" FROM "users" u WHERE "active" = ? ...
//	// compiled.Values: []any{true}
//
// # Alias Generation
//
// Repeated non-trivial expressions receive generated aliases keyed by their
// canonical text: the first encounter through the alias map renders
// `<expr> AS <alias>`, later encounters render the bare alias. Select-list
// rendering never consults the alias map, so the defining occurrence is the
// first GROUP BY use. ORDER BY only references aliases defined earlier; an
// ordering expression without a stored alias renders directly.
//
// # Lookup Fields
//
// A field may reference a column living in a lookup table. Such fields are
// rewritten in place by a FieldResolver before rendering, and the implied
// joins are added to the query's table list. A schema-backed resolver built
// from a DBML project is provided; see NewSchema.
//
// # Placeholder Binding
//
// Compiled text uses `?` placeholders throughout. The postgres, sqlite,
// mariadb, and mssql subpackages rebind them to each backend's positional
// convention.
package relq

// FieldResolver rewrites a lookup-table field in place so that subsequent
// rendering produces a concrete column reference. Implementations may also
// extend the query's table list with the joins the rewrite implies. A
// resolution failure (no join path) is returned unrecovered.
type FieldResolver interface {
	Resolve(q *Query, f *Field) error
}
