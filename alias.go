package relq

import (
	"strconv"
	"strings"
)

const (
	// aliasSuffix marks generated aliases.
	aliasSuffix = "_alias"
	// aliasFallbackBase is used when the canonical text sanitizes to nothing.
	aliasFallbackBase = "expr"
)

// AliasMap assigns and remembers generated aliases for non-trivial
// expressions, keyed by canonical text rather than node identity. All alias
// values held by one map are pairwise distinct.
type AliasMap struct {
	aliases map[string]string // canonical text -> alias
}

// NewAliasMap creates an empty alias map.
func NewAliasMap() *AliasMap {
	return &AliasMap{aliases: make(map[string]string)}
}

// Alias renders an expression through the map. Simple expressions render
// directly with no state change. The first encounter of a non-simple
// expression's canonical text defines its alias and renders
// `<expr> AS <alias>`; every later encounter renders the bare alias.
func (m *AliasMap) Alias(e Expr) (string, error) {
	if e.Simple() {
		return e.Render()
	}
	if alias, ok := m.aliases[e.Canonical()]; ok {
		return alias, nil
	}
	direct, err := e.Render()
	if err != nil {
		return "", err
	}
	return direct + " AS " + m.uniqueAlias(e), nil
}

// Stored returns the alias already defined for the expression's canonical
// text, if any. It never defines a new alias, so clauses that may only
// reference aliases (ORDER BY) can consult the map without mutating it.
func (m *AliasMap) Stored(e Expr) (string, bool) {
	if e.Simple() {
		return "", false
	}
	alias, ok := m.aliases[e.Canonical()]
	return alias, ok
}

// uniqueAlias derives a new map-wide unique alias from the expression's
// canonical text and stores the mapping. Generation is deterministic given
// the traversal order and the aliases already present.
func (m *AliasMap) uniqueAlias(e Expr) string {
	text := e.Canonical()
	name := sanitizeAliasBase(text) + aliasSuffix
	for m.used(name) {
		name = bumpAliasSuffix(name)
	}
	m.aliases[text] = name
	return name
}

func (m *AliasMap) used(name string) bool {
	for _, alias := range m.aliases {
		if alias == name {
			return true
		}
	}
	return false
}

// sanitizeAliasBase replaces every non-alphabetic character with an
// underscore and trims trailing underscores. Text that sanitizes to nothing
// falls back to a fixed base.
func sanitizeAliasBase(text string) string {
	var b strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	base := strings.TrimRight(b.String(), "_")
	if base == "" {
		return aliasFallbackBase
	}
	return base
}

// bumpAliasSuffix appends a numeric suffix on first collision and increments
// an existing trailing suffix on later ones.
func bumpAliasSuffix(name string) string {
	idx := strings.LastIndex(name, "_")
	if idx >= 0 && idx < len(name)-1 {
		if n, err := strconv.Atoi(name[idx+1:]); err == nil {
			return name[:idx+1] + strconv.Itoa(n+1)
		}
	}
	return name + "_1"
}
