package token

import "sort"

// reservedWords holds every mnemonic, operand word, condition, modifier,
// source and directive recognized by the scanner, lower-cased, in strict
// ascending order. Lookup is by binary search; the sortedness of this table
// is itself a checked invariant (see reserved_test.go and the init below).
var reservedWords = [...]string{
	"auto",
	"block",
	"clear",
	"clock_div",
	"define",
	"exec",
	"fifo",
	"gpio",
	"ifempty",
	"iffull",
	"in",
	"irq",
	"isr",
	"jmp",
	"jmppin",
	"lang_opt",
	"left",
	"manual",
	"mov",
	"mov_status",
	"next",
	"noblock",
	"nop",
	"nowait",
	"null",
	"opt",
	"origin",
	"osr",
	"osre",
	"out",
	"pc",
	"pin",
	"pindirs",
	"pins",
	"pio_version",
	"prev",
	"program",
	"public",
	"pull",
	"push",
	"rel",
	"right",
	"rp2040",
	"rp2350",
	"set",
	"side",
	"side_set",
	"status",
	"wait",
	"word",
	"wrap",
	"wrap_target",
	"x",
	"y",
}

func init() {
	if !sort.StringsAreSorted(reservedWords[:]) {
		panic("token: reservedWords table is not sorted")
	}
}

// IsReserved reports whether the lower-cased word w is a reserved word.
// Lookup is a binary search over the sorted table.
func IsReserved(w string) bool {
	i := sort.SearchStrings(reservedWords[:], w)
	return i < len(reservedWords) && reservedWords[i] == w
}
