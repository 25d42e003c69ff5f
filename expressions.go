package relq

import "strings"

// Call applies a function or aggregate to argument expressions. Calls are
// never simple: repeated occurrences are deduplicated through the alias map
// by canonical text.
type Call struct {
	Name string
	Args []Expr
	As   string
}

// Fn creates a function call expression.
func Fn(name string, args ...Expr) *Call {
	return &Call{Name: name, Args: args}
}

// Aggregate constructors.

// Count creates a COUNT aggregate over a field or expression.
func Count(arg Expr) *Call { return Fn("COUNT", arg) }

// CountDistinct creates a COUNT(DISTINCT ...) aggregate.
func CountDistinct(arg Expr) *Call { return Fn("COUNT DISTINCT", arg) }

// Sum creates a SUM aggregate.
func Sum(arg Expr) *Call { return Fn("SUM", arg) }

// Avg creates an AVG aggregate.
func Avg(arg Expr) *Call { return Fn("AVG", arg) }

// Min creates a MIN aggregate.
func Min(arg Expr) *Call { return Fn("MIN", arg) }

// Max creates a MAX aggregate.
func Max(arg Expr) *Call { return Fn("MAX", arg) }

// WithAlias sets an explicit alias for the select list.
func (c *Call) WithAlias(alias string) *Call {
	c.As = alias
	return c
}

// IsAggregate reports whether the call applies one of the supported
// aggregate functions.
func (c *Call) IsAggregate() bool {
	switch c.Name {
	case "COUNT", "COUNT DISTINCT", "SUM", "AVG", "MIN", "MAX":
		return true
	}
	return false
}

func (c *Call) Render() (string, error) {
	args := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		s, err := arg.Render()
		if err != nil {
			return "", err
		}
		args = append(args, s)
	}
	if c.Name == "COUNT DISTINCT" {
		return "COUNT(DISTINCT " + strings.Join(args, ", ") + ")", nil
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")", nil
}

func (c *Call) Canonical() string {
	args := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		args = append(args, arg.Canonical())
	}
	if c.Name == "COUNT DISTINCT" {
		return "COUNT(DISTINCT " + strings.Join(args, ", ") + ")"
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

func (*Call) Simple() bool { return false }

func (c *Call) WalkFields(fn func(*Field) error) error {
	for _, arg := range c.Args {
		if err := arg.WalkFields(fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Call) AppendValues(vals []any) []any {
	for _, arg := range c.Args {
		vals = arg.AppendValues(vals)
	}
	return vals
}

func (c *Call) AliasName() string { return c.As }
