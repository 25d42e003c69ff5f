package relq

import (
	"fmt"

	"github.com/zoobzio/dbml"
)

// lookupPath describes how a primary table reaches a lookup table.
type lookupPath struct {
	LocalKey    string
	LookupTable string
	LookupKey   string
}

// Schema is a DBML-backed FieldResolver. It indexes a project's tables and
// columns for validation and holds the declared lookup paths used to rewrite
// lookup fields into concrete column references.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables  map[string]*dbml.Table
	fields  map[string]map[string]*dbml.Column // table -> field -> column
	lookups map[string]map[string]lookupPath   // table -> lookup table -> path
}

// NewSchema creates a Schema from a DBML project.
func NewSchema(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
		lookups: make(map[string]map[string]lookupPath),
	}

	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.fields[table.Name][col.Name] = col
		}
	}

	return s, nil
}

// AddLookup declares a join path: rows of table reference rows of
// lookupTable through localKey = lookupKey.
func (s *Schema) AddLookup(table, localKey, lookupTable, lookupKey string) error {
	if err := s.validateColumn(table, localKey); err != nil {
		return err
	}
	if err := s.validateColumn(lookupTable, lookupKey); err != nil {
		return err
	}
	if s.lookups[table] == nil {
		s.lookups[table] = make(map[string]lookupPath)
	}
	s.lookups[table][lookupTable] = lookupPath{
		LocalKey:    localKey,
		LookupTable: lookupTable,
		LookupKey:   lookupKey,
	}
	return nil
}

// Resolve rewrites a lookup field in place to a concrete column reference
// and registers the implied join on the query's table list.
func (s *Schema) Resolve(q *Query, f *Field) error {
	primary := q.Tables.Primary.Name
	path, ok := s.lookups[primary][f.Lookup]
	if !ok {
		return fmt.Errorf("no join path from table %q to lookup table %q", primary, f.Lookup)
	}
	if err := s.validateColumn(path.LookupTable, f.Name); err != nil {
		return err
	}

	on := fmt.Sprintf("%s.%s = %s.%s",
		renderPrefix(primaryPrefix(q)), quoteIdentifier(path.LocalKey),
		quoteIdentifier(path.LookupTable), quoteIdentifier(path.LookupKey))
	q.Tables.AddJoin(TableRef{Name: path.LookupTable}, on)

	f.Table = path.LookupTable
	f.Lookup = ""
	return nil
}

// primaryPrefix picks the prefix joins use for the primary table: its alias
// when one is set, otherwise the table name.
func primaryPrefix(q *Query) string {
	if q.Tables.Primary.Alias != "" {
		return q.Tables.Primary.Alias
	}
	return q.Tables.Primary.Name
}

func (s *Schema) validateColumn(table, column string) error {
	cols, ok := s.fields[table]
	if !ok {
		return fmt.Errorf("table %q not found in schema", table)
	}
	if _, ok := cols[column]; !ok {
		return fmt.Errorf("column %q not found in table %q", column, table)
	}
	return nil
}

// T creates a validated table reference, panicking when the table is not in
// the schema.
func (s *Schema) T(name string, alias ...string) TableRef {
	if _, ok := s.tables[name]; !ok {
		panic(fmt.Errorf("table %q not found in schema", name))
	}
	return T(name, alias...)
}

// F creates a validated field reference, panicking when no table in the
// schema carries the column.
func (s *Schema) F(name string) *Field {
	for _, cols := range s.fields {
		if _, ok := cols[name]; ok {
			return F(name)
		}
	}
	panic(fmt.Errorf("field %q not found in schema", name))
}

// LF creates a validated lookup field reference.
func (s *Schema) LF(lookupTable, name string) *Field {
	if err := s.validateColumn(lookupTable, name); err != nil {
		panic(err)
	}
	return F(name).WithLookup(lookupTable)
}
