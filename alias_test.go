package relq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/relq"
)

func TestAliasMap_SimpleExpressionsPassThrough(t *testing.T) {
	m := relq.NewAliasMap()

	got, err := m.Alias(relq.F("username"))
	require.NoError(t, err)
	assert.Equal(t, `"username"`, got)

	got, err = m.Alias(relq.V(42))
	require.NoError(t, err)
	assert.Equal(t, "?", got)

	// Simple renders never mutate the map; this is still a first encounter.
	got, err = m.Alias(relq.Count(relq.F("username")))
	require.NoError(t, err)
	assert.Equal(t, `COUNT("username") AS COUNT_username_alias`, got)
}

func TestAliasMap_DefineThenReference(t *testing.T) {
	m := relq.NewAliasMap()
	expr := relq.Count(relq.F("x"))

	first, err := m.Alias(expr)
	require.NoError(t, err)
	assert.Equal(t, `COUNT("x") AS COUNT_x_alias`, first)

	// Second encounter returns the bare alias, no definition suffix.
	second, err := m.Alias(expr)
	require.NoError(t, err)
	assert.Equal(t, "COUNT_x_alias", second)

	// A structurally distinct node with identical canonical text collapses
	// onto the same alias.
	third, err := m.Alias(relq.Count(relq.F("x")))
	require.NoError(t, err)
	assert.Equal(t, "COUNT_x_alias", third)
}

func TestAliasMap_StoredNeverDefines(t *testing.T) {
	m := relq.NewAliasMap()
	expr := relq.Count(relq.F("x"))

	// Nothing defined yet; Stored must not define it either.
	alias, ok := m.Stored(expr)
	assert.False(t, ok)
	assert.Empty(t, alias)

	_, err := m.Alias(expr)
	require.NoError(t, err)

	alias, ok = m.Stored(expr)
	assert.True(t, ok)
	assert.Equal(t, "COUNT_x_alias", alias)

	// Simple expressions never have stored aliases.
	alias, ok = m.Stored(relq.F("x"))
	assert.False(t, ok)
	assert.Empty(t, alias)
}

func TestAliasMap_CollidingBasesGetNumericSuffixes(t *testing.T) {
	m := relq.NewAliasMap()

	// Distinct canonical texts, identical sanitized bases.
	first, err := m.Alias(relq.Sum(relq.F("a.b")))
	require.NoError(t, err)
	assert.Equal(t, `SUM("a.b") AS SUM_a_b_alias`, first)

	second, err := m.Alias(relq.Sum(relq.F("a_b")))
	require.NoError(t, err)
	assert.Equal(t, `SUM("a_b") AS SUM_a_b_alias_1`, second)

	third, err := m.Alias(relq.Sum(relq.F("a-b")))
	require.NoError(t, err)
	assert.Equal(t, `SUM("a-b") AS SUM_a_b_alias_2`, third)

	// Referencing any of them again returns the stored alias.
	again, err := m.Alias(relq.Sum(relq.F("a_b")))
	require.NoError(t, err)
	assert.Equal(t, "SUM_a_b_alias_1", again)
}

func TestAliasMap_EmptySanitizedBaseFallsBack(t *testing.T) {
	m := relq.NewAliasMap()

	// Canonical text "? + ?" sanitizes to nothing.
	got, err := m.Alias(relq.Term(relq.V(1), "+", relq.V(2)))
	require.NoError(t, err)
	assert.Equal(t, "? + ? AS expr_alias", got)
}

func TestAliasMap_DeterministicAcrossInstances(t *testing.T) {
	build := func() []string {
		m := relq.NewAliasMap()
		var out []string
		for _, e := range []relq.Expr{
			relq.Sum(relq.F("a.b")),
			relq.Sum(relq.F("a_b")),
			relq.Count(relq.F("x")),
		} {
			s, err := m.Alias(e)
			require.NoError(t, err)
			out = append(out, s)
		}
		return out
	}

	assert.Equal(t, build(), build())
}
