package relq

import (
	"fmt"
	"strings"
)

// Compiled is the immutable output of one compile: SQL text with positional
// `?` placeholders and the values to bind against them, in placeholder order.
type Compiled struct {
	Text   string
	Values []any
}

// Compiler compiles exactly one query AST. The alias map and harvested value
// list are private per-compile state, so concurrent callers must each own
// their own Compiler. The result is computed at most once and cached; once
// produced it is safe to read concurrently.
type Compiler struct {
	query    *Query
	resolver FieldResolver
	aliases  *AliasMap
	compiled *Compiled
	err      error
	done     bool
}

// NewCompiler creates a compiler over one query AST. The resolver may be nil
// when the query contains no lookup fields.
func NewCompiler(q *Query, r FieldResolver) *Compiler {
	return &Compiler{
		query:    q,
		resolver: r,
		aliases:  NewAliasMap(),
	}
}

// Compile compiles a query AST in one shot.
func Compile(q *Query, r FieldResolver) (*Compiled, error) {
	return NewCompiler(q, r).Compile()
}

// Compile returns the compiled text and value sequence, building them on the
// first call. A failed build yields no partial result: every later call
// returns the same error and a nil Compiled.
func (c *Compiler) Compile() (*Compiled, error) {
	if !c.done {
		c.compiled, c.err = c.build()
		if c.err != nil {
			c.compiled = nil
		}
		c.done = true
	}
	return c.compiled, c.err
}

// build runs the resolution and harvest passes in the order that fixes
// positional-parameter order to match placeholder order in the rendered
// text, then assembles the clause text.
func (c *Compiler) build() (*Compiled, error) {
	q := c.query

	q.resolveRecordContext()

	var values []any
	for _, sel := range q.Selects {
		if err := c.resolveFields(sel); err != nil {
			return nil, err
		}
	}
	for _, sel := range q.Selects {
		values = sel.AppendValues(values)
	}

	if err := q.AugmentJoins(c.resolver); err != nil {
		return nil, err
	}
	if q.Head != nil {
		values = q.Head.AppendValues(values)
	}

	if q.Grouping != nil {
		for _, arg := range q.Grouping.Args {
			if err := c.resolveFields(arg); err != nil {
				return nil, err
			}
			values = arg.AppendValues(values)
		}
	}

	if q.Having != nil {
		if err := c.resolveFields(q.Having); err != nil {
			return nil, err
		}
		values = q.Having.AppendValues(values)
	}

	// Ordering suppressed by a single-row aggregate emits no placeholders,
	// so it must harvest no values either.
	if q.OrderExplicit && !q.SingleAggregate {
		for _, s := range q.Order {
			if err := c.resolveFields(s.Expr); err != nil {
				return nil, err
			}
			values = s.Expr.AppendValues(values)
		}
	}

	text, err := c.assemble()
	if err != nil {
		return nil, err
	}
	return &Compiled{Text: text, Values: values}, nil
}

// resolveFields resolves every lookup field contained in an expression.
func (c *Compiler) resolveFields(e Expr) error {
	return e.WalkFields(func(f *Field) error {
		if f.Lookup == "" {
			return nil
		}
		if c.resolver == nil {
			return fmt.Errorf("lookup field %q requires a field resolver", f.Name)
		}
		return c.resolver.Resolve(c.query, f)
	})
}

// assemble emits the clauses in fixed order. Select columns render directly,
// never through the alias map; GROUP BY passes non-simple expressions through
// it so a repeated expression defines its alias exactly once, and ORDER BY
// references a stored alias bare or falls back to the direct render.
func (c *Compiler) assemble() (string, error) {
	q := c.query
	var sql strings.Builder

	sql.WriteString("SELECT ")
	if len(q.Selects) == 0 {
		sql.WriteString("*")
	} else {
		cols := make([]string, 0, len(q.Selects))
		for _, sel := range q.Selects {
			s, err := sel.Render()
			if err != nil {
				return "", err
			}
			if name := sel.AliasName(); name != "" {
				s += " AS " + quoteIdentifier(name)
			}
			cols = append(cols, s)
		}
		sql.WriteString(strings.Join(cols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(q.Tables.Render())

	if q.Head != nil {
		where, err := q.Head.Render()
		if err != nil {
			return "", err
		}
		if where != "" {
			sql.WriteString(" WHERE ")
			sql.WriteString(where)
		}
	}

	if q.Grouping != nil {
		keys := make([]string, 0, len(q.Grouping.Args))
		for _, arg := range q.Grouping.Args {
			s, err := c.aliases.Alias(arg)
			if err != nil {
				return "", err
			}
			keys = append(keys, s)
		}
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(keys, ", "))

		if q.Having != nil {
			having, err := q.Having.Render()
			if err != nil {
				return "", err
			}
			sql.WriteString(" HAVING ")
			sql.WriteString(having)
		}
	}

	if !q.SingleAggregate && q.OrderExplicit && len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, s := range q.Order {
			// ORDER BY may reference an alias defined earlier but must
			// never define one: an alias definition is invalid here.
			rendered, ok := c.aliases.Stored(s.Expr)
			if !ok {
				var err error
				rendered, err = s.Expr.Render()
				if err != nil {
					return "", err
				}
			}
			parts = append(parts, rendered+" "+string(s.Direction))
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	limit, offset := q.pageBounds()
	if limit > 0 {
		fmt.Fprintf(&sql, " LIMIT %d", limit)
	}
	if offset > 0 {
		fmt.Fprintf(&sql, " OFFSET %d", offset)
	}

	text := sql.String()
	if q.IsSubquery && !q.IsExists && !q.IsSubqueryExpr {
		text = "(" + text + ") AS " + quoteIdentifier(q.Alias)
	}
	return text, nil
}
