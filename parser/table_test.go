package parser

import (
	"sort"
	"testing"

	"github.com/dcrockford/pioasm/token"
	"github.com/stretchr/testify/require"
)

// These tests run in-package (not parser_test) since they exercise the
// unexported keywordRules table directly, the way the teacher's own
// sortedness checks operate on its reserved-word table.

func TestKeywordRulesSorted(t *testing.T) {
	require.True(t, sort.SliceIsSorted(keywordRules, func(i, j int) bool {
		return keywordRules[i].key < keywordRules[j].key
	}), "keywordRules must stay sorted by key for lookupRule's binary search")
}

func TestKeywordRulesNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range keywordRules {
		require.False(t, seen[r.key], "duplicate keyword rule for %q", r.key)
		seen[r.key] = true
	}
}

func TestLookupRuleFindsRegisteredKeyword(t *testing.T) {
	r := lookupRule(token.Token{Kind: token.Keyword, Text: "jmp"})
	require.NotNil(t, r)
	require.NotNil(t, r.prefix)
}

func TestLookupRuleMissesUnregisteredKeyword(t *testing.T) {
	r := lookupRule(token.Token{Kind: token.Keyword, Text: "definitely-not-a-keyword"})
	require.Nil(t, r)
}
