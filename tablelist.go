package relq

// TableRef is a table reference with an optional alias.
type TableRef struct {
	Name  string
	Alias string
}

// T creates a table reference. The alias, when given, must be a single
// lowercase letter.
func T(name string, alias ...string) TableRef {
	t := TableRef{Name: name}
	if len(alias) > 0 {
		t.Alias = alias[0]
	}
	return t
}

func renderTable(t TableRef) string {
	quoted := quoteIdentifier(t.Name)
	if t.Alias != "" {
		// Aliases are restricted to single lowercase letters and render bare.
		return quoted + " " + t.Alias
	}
	return quoted
}

// JoinClause is a lookup join accumulated during field resolution.
type JoinClause struct {
	Table TableRef
	On    string
}

// TableList renders the FROM body: the primary table plus any lookup joins
// added while resolving fields.
type TableList struct {
	Primary TableRef
	Joins   []JoinClause
}

// AddJoin appends a LEFT JOIN for a lookup table. Adding the same table
// twice is a no-op, so repeated lookups into one table share a single join.
func (tl *TableList) AddJoin(t TableRef, on string) {
	for _, j := range tl.Joins {
		if j.Table.Name == t.Name {
			return
		}
	}
	tl.Joins = append(tl.Joins, JoinClause{Table: t, On: on})
}

// Render produces the FROM clause body.
func (tl *TableList) Render() string {
	out := renderTable(tl.Primary)
	for _, j := range tl.Joins {
		out += " LEFT JOIN " + renderTable(j.Table) + " ON " + j.On
	}
	return out
}
