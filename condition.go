package relq

import "fmt"

// Infix is a binary expression: a comparison in the filter tree or a
// computed term like "price" * ?.
type Infix struct {
	Left  Expr
	Op    Operator
	Right Expr
	As    string
}

// C creates a simple condition comparing an expression against another,
// typically a field against a literal value.
func C(left Expr, op Operator, right Expr) *Infix {
	return &Infix{Left: left, Op: op, Right: right}
}

// Term creates a computed binary term for use in select or grouping lists.
func Term(left Expr, op Operator, right Expr) *Infix {
	return &Infix{Left: left, Op: op, Right: right}
}

// WithAlias sets an explicit alias for the select list.
func (i *Infix) WithAlias(alias string) *Infix {
	i.As = alias
	return i
}

func (i *Infix) Render() (string, error) {
	left, err := i.Left.Render()
	if err != nil {
		return "", err
	}
	right, err := i.Right.Render()
	if err != nil {
		return "", err
	}
	return left + " " + string(i.Op) + " " + right, nil
}

func (i *Infix) Canonical() string {
	return i.Left.Canonical() + " " + string(i.Op) + " " + i.Right.Canonical()
}

func (*Infix) Simple() bool { return false }

func (i *Infix) WalkFields(fn func(*Field) error) error {
	if err := i.Left.WalkFields(fn); err != nil {
		return err
	}
	return i.Right.WalkFields(fn)
}

func (i *Infix) AppendValues(vals []any) []any {
	vals = i.Left.AppendValues(vals)
	return i.Right.AppendValues(vals)
}

func (i *Infix) AliasName() string { return i.As }

// Unary applies a prefix or postfix operator to a single expression.
type Unary struct {
	Op      string
	Operand Expr
	Postfix bool
}

// Null creates an IS NULL condition.
func Null(e Expr) *Unary {
	return &Unary{Op: "IS NULL", Operand: e, Postfix: true}
}

// NotNull creates an IS NOT NULL condition.
func NotNull(e Expr) *Unary {
	return &Unary{Op: "IS NOT NULL", Operand: e, Postfix: true}
}

// Not negates a condition.
func Not(e Expr) *Unary {
	return &Unary{Op: "NOT", Operand: e}
}

func (u *Unary) Render() (string, error) {
	s, err := u.Operand.Render()
	if err != nil {
		return "", err
	}
	if u.Postfix {
		return s + " " + u.Op, nil
	}
	return u.Op + " " + s, nil
}

func (u *Unary) Canonical() string {
	if u.Postfix {
		return u.Operand.Canonical() + " " + u.Op
	}
	return u.Op + " " + u.Operand.Canonical()
}

func (*Unary) Simple() bool { return false }

func (u *Unary) WalkFields(fn func(*Field) error) error {
	return u.Operand.WalkFields(fn)
}

func (u *Unary) AppendValues(vals []any) []any {
	return u.Operand.AppendValues(vals)
}

func (*Unary) AliasName() string { return "" }

// Group combines filter conditions with AND/OR logic. It is the shape of the
// filter-tree root: an empty group renders as "" and causes the WHERE clause
// to be omitted entirely.
type Group struct {
	Logic LogicOperator
	Items []Expr
}

// And creates a condition group with AND logic.
func And(items ...Expr) *Group {
	return &Group{Logic: AND, Items: items}
}

// Or creates a condition group with OR logic.
func Or(items ...Expr) *Group {
	return &Group{Logic: OR, Items: items}
}

func (g *Group) Render() (string, error) {
	if len(g.Items) == 0 {
		return "", nil
	}
	if g.Logic != AND && g.Logic != OR {
		return "", fmt.Errorf("unknown logic operator: %q", g.Logic)
	}
	out := "("
	for idx, item := range g.Items {
		if idx > 0 {
			out += " " + string(g.Logic) + " "
		}
		s, err := item.Render()
		if err != nil {
			return "", err
		}
		out += s
	}
	return out + ")", nil
}

func (g *Group) Canonical() string {
	if len(g.Items) == 0 {
		return ""
	}
	out := "("
	for idx, item := range g.Items {
		if idx > 0 {
			out += " " + string(g.Logic) + " "
		}
		out += item.Canonical()
	}
	return out + ")"
}

func (*Group) Simple() bool { return false }

func (g *Group) WalkFields(fn func(*Field) error) error {
	for _, item := range g.Items {
		if err := item.WalkFields(fn); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) AppendValues(vals []any) []any {
	for _, item := range g.Items {
		vals = item.AppendValues(vals)
	}
	return vals
}

func (*Group) AliasName() string { return "" }
