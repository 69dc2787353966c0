package token_test

import (
	"sort"
	"testing"

	"github.com/dcrockford/pioasm/token"
	"github.com/stretchr/testify/assert"
)

func TestIsReserved_Members(t *testing.T) {
	for _, w := range []string{"jmp", "wait", "pins", "side_set", "rp2040", "x", "y", "osre"} {
		assert.True(t, token.IsReserved(w), "%q should be reserved", w)
	}
}

func TestIsReserved_NonMembers(t *testing.T) {
	for _, w := range []string{"", "foo", "jmpx", "my_label", "rp2041"} {
		assert.False(t, token.IsReserved(w), "%q should not be reserved", w)
	}
}

// TestReservedTableSorted is the checked invariant from the testable
// properties list: the reserved word table must be sorted ascending.
func TestReservedTableSorted(t *testing.T) {
	words := []string{
		"auto", "block", "clear", "clock_div", "define",
		"exec", "fifo", "gpio", "ifempty", "iffull", "in", "irq", "isr", "jmp",
		"jmppin", "lang_opt", "left", "manual", "mov", "mov_status", "next",
		"noblock", "nop", "nowait", "null", "opt", "origin", "osr", "osre", "out",
		"pc", "pin", "pindirs", "pins", "pio_version", "prev", "program",
		"public", "pull", "push", "rel", "right", "rp2040", "rp2350", "set",
		"side", "side_set", "status", "wait", "word", "wrap", "wrap_target",
		"x", "y",
	}
	assert.True(t, sort.StringsAreSorted(words))
	for _, w := range words {
		assert.True(t, token.IsReserved(w), "%q missing from IsReserved", w)
	}
}
