package relq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/relq"
)

func TestField_Render(t *testing.T) {
	tests := []struct {
		name     string
		field    *relq.Field
		expected string
	}{
		{"bare", relq.F("email"), `"email"`},
		{"alias prefix", relq.F("email").WithTable("u"), `u."email"`},
		{"table prefix", relq.F("email").WithTable("users"), `"users"."email"`},
		{"reserved word", relq.F("order"), `"order"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestField_UnresolvedLookupFailsToRender(t *testing.T) {
	_, err := relq.F("city").WithLookup("addresses").Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved lookup field")
}

func TestField_CanonicalUsesLookupTable(t *testing.T) {
	assert.Equal(t, "addresses.city", relq.F("city").WithLookup("addresses").Canonical())
	assert.Equal(t, "u.city", relq.F("city").WithTable("u").Canonical())
	assert.Equal(t, "city", relq.F("city").Canonical())
}

func TestValue_NullMarker(t *testing.T) {
	null := relq.NullValue()
	got, err := null.Render()
	require.NoError(t, err)
	assert.Equal(t, "NULL", got)
	assert.Empty(t, null.AppendValues(nil))

	v := relq.V("hello")
	got, err = v.Render()
	require.NoError(t, err)
	assert.Equal(t, "?", got)
	assert.Equal(t, []any{"hello"}, v.AppendValues(nil))
}

func TestCall_RenderAndCanonical(t *testing.T) {
	sum := relq.Sum(relq.F("total"))
	got, err := sum.Render()
	require.NoError(t, err)
	assert.Equal(t, `SUM("total")`, got)
	assert.Equal(t, "SUM(total)", sum.Canonical())
	assert.False(t, sum.Simple())
	assert.True(t, sum.IsAggregate())

	distinct := relq.CountDistinct(relq.F("user_id"))
	got, err = distinct.Render()
	require.NoError(t, err)
	assert.Equal(t, `COUNT(DISTINCT "user_id")`, got)
	assert.Equal(t, "COUNT(DISTINCT user_id)", distinct.Canonical())

	custom := relq.Fn("LOWER", relq.F("email"))
	assert.False(t, custom.IsAggregate())
}

func TestCall_WalkFieldsVisitsArguments(t *testing.T) {
	call := relq.Fn("COALESCE", relq.F("nickname"), relq.F("username"))
	var seen []string
	err := call.WalkFields(func(f *relq.Field) error {
		seen = append(seen, f.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"nickname", "username"}, seen)
}

func TestSimpleExpressions(t *testing.T) {
	assert.True(t, relq.F("id").Simple())
	assert.True(t, relq.V(1).Simple())
	assert.False(t, relq.Count(relq.F("id")).Simple())
	assert.False(t, relq.C(relq.F("a"), relq.EQ, relq.V(1)).Simple())
	assert.False(t, relq.Null(relq.F("a")).Simple())
	assert.False(t, relq.And().Simple())
}
