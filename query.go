package relq

import (
	"fmt"
	"strconv"
)

// CurrentRecord is the sentinel result index meaning "the record the query
// context is positioned on". It is substituted with the context index before
// paging rules are applied.
const CurrentRecord = -1

// SortExpr pairs an expression with a sort direction.
type SortExpr struct {
	Expr      Expr
	Direction Direction
}

// Sort creates an ordering entry.
func Sort(e Expr, d Direction) SortExpr {
	return SortExpr{Expr: e, Direction: d}
}

// Grouping is the grouping specification: an ordered list of arguments that
// become the GROUP BY keys.
type Grouping struct {
	Args []Expr
}

// Query is the compiler's sole input: an already-parsed query AST. It is
// produced upstream (see Builder) and mutated only by the resolution hooks
// the compiler invokes on it.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type Query struct {
	Selects  []Expr
	Head     Expr // filter-tree root, may be nil
	Grouping *Grouping
	Having   Expr
	Order    []SortExpr
	Options  map[string][]string
	Tables   TableList

	// Subquery context flags and the alias used when wrapped as a derived table.
	IsSubquery     bool
	IsExists       bool
	IsSubqueryExpr bool
	Alias          string

	// RecordIndex picks the Nth logical record; 0 means absent and
	// CurrentRecord defers to ContextIndex.
	RecordIndex  int
	ContextIndex int

	OrderExplicit   bool
	SingleAggregate bool
}

// Option returns the argument list stored under name.
func (q *Query) Option(name string) ([]string, bool) {
	if q.Options == nil {
		return nil, false
	}
	args, ok := q.Options[name]
	return args, ok
}

// SetOption stores an option's argument list.
func (q *Query) SetOption(name string, args ...string) {
	if q.Options == nil {
		q.Options = make(map[string][]string)
	}
	q.Options[name] = args
}

// resolveRecordContext substitutes a contextual record reference with the
// concrete index carried by the query context.
func (q *Query) resolveRecordContext() {
	if q.RecordIndex == CurrentRecord {
		q.RecordIndex = q.ContextIndex
	}
}

// AugmentJoins resolves lookup fields inside the filter tree, extending the
// table list with the joins the primary table context implies.
func (q *Query) AugmentJoins(r FieldResolver) error {
	if q.Head == nil {
		return nil
	}
	return q.Head.WalkFields(func(f *Field) error {
		if f.Lookup == "" {
			return nil
		}
		if r == nil {
			return fmt.Errorf("lookup field %q requires a field resolver", f.Name)
		}
		return r.Resolve(q, f)
	})
}

// countOption parses the count option's first argument. Values that parse to
// zero or negative, or fail to parse, are treated as absent.
func (q *Query) countOption() int {
	args, ok := q.Option("count")
	if !ok || len(args) == 0 {
		return 0
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// pageBounds applies the paging rules. An explicit record index takes
// precedence over the count option; a zero return means the clause is
// omitted.
func (q *Query) pageBounds() (limit, offset int) {
	count := q.countOption()
	if q.RecordIndex > 0 {
		limit = 1
		if count > 0 {
			limit = count
		}
		if q.RecordIndex > 1 {
			offset = q.RecordIndex - 1
		}
		return limit, offset
	}
	return count, 0
}

// Validate performs basic shape validation on the AST.
func (q *Query) Validate() error {
	if q.Tables.Primary.Name == "" {
		return fmt.Errorf("primary table is required")
	}
	if q.Having != nil && q.Grouping == nil {
		return fmt.Errorf("HAVING requires a grouping specification")
	}
	if q.IsSubquery && !q.IsExists && !q.IsSubqueryExpr && q.Alias == "" {
		return fmt.Errorf("derived subquery requires an alias")
	}
	return nil
}
