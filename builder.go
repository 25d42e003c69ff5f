package relq

import (
	"fmt"
	"strconv"
)

// Builder provides a fluent API for constructing query ASTs. The textual
// query parser that normally produces them lives upstream; the builder is
// the programmatic equivalent.
type Builder struct {
	query *Query
	err   error
}

// From creates a new query builder over a primary table.
func From(t TableRef) *Builder {
	return &Builder{
		query: &Query{
			Tables:  TableList{Primary: t},
			Options: make(map[string][]string),
		},
	}
}

// Fields sets the select expressions.
func (b *Builder) Fields(exprs ...Expr) *Builder {
	if b.err != nil {
		return b
	}
	b.query.Selects = exprs
	return b
}

// Where sets or adds filter conditions. A second call combines with AND.
func (b *Builder) Where(condition Expr) *Builder {
	if b.err != nil {
		return b
	}
	if b.query.Head == nil {
		b.query.Head = condition
	} else {
		b.query.Head = And(b.query.Head, condition)
	}
	return b
}

// GroupBy sets the grouping specification's argument list.
func (b *Builder) GroupBy(args ...Expr) *Builder {
	if b.err != nil {
		return b
	}
	if len(args) == 0 {
		b.err = fmt.Errorf("GroupBy requires at least one argument")
		return b
	}
	if b.query.Grouping == nil {
		b.query.Grouping = &Grouping{}
	}
	b.query.Grouping.Args = append(b.query.Grouping.Args, args...)
	return b
}

// Having sets the having expression.
func (b *Builder) Having(condition Expr) *Builder {
	if b.err != nil {
		return b
	}
	if b.query.Grouping == nil {
		b.err = fmt.Errorf("HAVING requires a grouping specification")
		return b
	}
	b.query.Having = condition
	return b
}

// OrderBy adds explicit ordering.
func (b *Builder) OrderBy(e Expr, direction Direction) *Builder {
	if b.err != nil {
		return b
	}
	b.query.Order = append(b.query.Order, Sort(e, direction))
	b.query.OrderExplicit = true
	return b
}

// Take stores the count option: the maximum number of records to return.
func (b *Builder) Take(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.query.SetOption("count", strconv.Itoa(n))
	return b
}

// At requests the Nth logical record.
func (b *Builder) At(index int) *Builder {
	if b.err != nil {
		return b
	}
	if index < 1 {
		b.err = fmt.Errorf("record index must be positive, got %d", index)
		return b
	}
	b.query.RecordIndex = index
	return b
}

// AtCurrent requests the record the query context is positioned on.
func (b *Builder) AtCurrent() *Builder {
	if b.err != nil {
		return b
	}
	b.query.RecordIndex = CurrentRecord
	return b
}

// Context sets the contextual record index substituted by AtCurrent.
func (b *Builder) Context(index int) *Builder {
	if b.err != nil {
		return b
	}
	b.query.ContextIndex = index
	return b
}

// Option stores an arbitrary option and its arguments.
func (b *Builder) Option(name string, args ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.query.SetOption(name, args...)
	return b
}

// AsSubquery marks the query as a derived table wrapped under an alias.
func (b *Builder) AsSubquery(alias string) *Builder {
	if b.err != nil {
		return b
	}
	b.query.IsSubquery = true
	b.query.Alias = alias
	return b
}

// AsExists marks the query as an EXISTS test; no derived-table wrapping.
func (b *Builder) AsExists() *Builder {
	if b.err != nil {
		return b
	}
	b.query.IsSubquery = true
	b.query.IsExists = true
	return b
}

// AsSubqueryExpr marks the query as an inline scalar subquery expression.
func (b *Builder) AsSubqueryExpr() *Builder {
	if b.err != nil {
		return b
	}
	b.query.IsSubquery = true
	b.query.IsSubqueryExpr = true
	return b
}

// Build returns the constructed AST or an error.
func (b *Builder) Build() (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.query.SingleAggregate = b.singleAggregate()
	if err := b.query.Validate(); err != nil {
		return nil, err
	}
	return b.query, nil
}

// MustBuild returns the AST or panics on error.
func (b *Builder) MustBuild() *Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Compile builds the AST and compiles it.
func (b *Builder) Compile(r FieldResolver) (*Compiled, error) {
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return Compile(q, r)
}

// singleAggregate reports whether the query collapses to a single-row
// aggregate: every select is an aggregate call and there are no grouping keys.
func (b *Builder) singleAggregate() bool {
	if b.query.Grouping != nil || len(b.query.Selects) == 0 {
		return false
	}
	for _, sel := range b.query.Selects {
		call, ok := sel.(*Call)
		if !ok || !call.IsAggregate() {
			return false
		}
	}
	return true
}
