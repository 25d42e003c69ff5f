package relq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/dbml"
	"github.com/zoobzio/relq"
)

func createTestSchema(t *testing.T) *relq.Schema {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("address_id", "bigint"))
	users.AddColumn(dbml.NewColumn("plan_id", "bigint"))
	project.AddTable(users)

	addresses := dbml.NewTable("addresses")
	addresses.AddColumn(dbml.NewColumn("id", "bigint"))
	addresses.AddColumn(dbml.NewColumn("city", "varchar"))
	addresses.AddColumn(dbml.NewColumn("country", "varchar"))
	project.AddTable(addresses)

	plans := dbml.NewTable("plans")
	plans.AddColumn(dbml.NewColumn("id", "bigint"))
	plans.AddColumn(dbml.NewColumn("name", "varchar"))
	project.AddTable(plans)

	schema, err := relq.NewSchema(project)
	require.NoError(t, err)
	require.NoError(t, schema.AddLookup("users", "address_id", "addresses", "id"))
	require.NoError(t, schema.AddLookup("users", "plan_id", "plans", "id"))
	return schema
}

func TestSchema_NilProject(t *testing.T) {
	_, err := relq.NewSchema(nil)
	require.Error(t, err)
}

func TestSchema_AddLookupValidatesColumns(t *testing.T) {
	schema := createTestSchema(t)

	err := schema.AddLookup("users", "no_such_column", "addresses", "id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_column")

	err = schema.AddLookup("users", "address_id", "missing_table", "id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing_table")
}

func TestSchema_ResolveRewritesFieldAndAddsJoin(t *testing.T) {
	schema := createTestSchema(t)

	compiled, err := relq.From(schema.T("users")).
		Fields(schema.F("username"), schema.LF("addresses", "city")).
		Where(relq.C(schema.LF("addresses", "country"), relq.EQ, relq.V("DE"))).
		Compile(schema)
	require.NoError(t, err)

	expected := `SELECT "username", "addresses"."city" FROM "users"` +
		` LEFT JOIN "addresses" ON "users"."address_id" = "addresses"."id"` +
		` WHERE "addresses"."country" = ?`
	assert.Equal(t, expected, compiled.Text)
	assert.Equal(t, []any{"DE"}, compiled.Values)
}

func TestSchema_RepeatedLookupsShareOneJoin(t *testing.T) {
	schema := createTestSchema(t)

	q := relq.From(schema.T("users")).
		Fields(schema.LF("addresses", "city"), schema.LF("addresses", "country")).
		MustBuild()

	compiled, err := relq.Compile(q, schema)
	require.NoError(t, err)
	assert.Len(t, q.Tables.Joins, 1)

	expected := `SELECT "addresses"."city", "addresses"."country" FROM "users"` +
		` LEFT JOIN "addresses" ON "users"."address_id" = "addresses"."id"`
	assert.Equal(t, expected, compiled.Text)
}

func TestSchema_AliasedPrimaryJoinsThroughAlias(t *testing.T) {
	schema := createTestSchema(t)

	compiled, err := relq.From(schema.T("users", "u")).
		Fields(schema.F("username").WithTable("u"), schema.LF("plans", "name")).
		Compile(schema)
	require.NoError(t, err)

	expected := `SELECT u."username", "plans"."name" FROM "users" u` +
		` LEFT JOIN "plans" ON u."plan_id" = "plans"."id"`
	assert.Equal(t, expected, compiled.Text)
}

func TestSchema_NoJoinPathFails(t *testing.T) {
	schema := createTestSchema(t)

	q := relq.From(schema.T("plans")).
		Fields(relq.F("city").WithLookup("addresses")).
		MustBuild()

	_, err := relq.Compile(q, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no join path")
}

func TestSchema_UnknownNamesPanic(t *testing.T) {
	schema := createTestSchema(t)

	assert.Panics(t, func() { schema.T("missing") })
	assert.Panics(t, func() { schema.F("missing") })
	assert.Panics(t, func() { schema.LF("addresses", "missing") })
}
