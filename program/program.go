// Package program defines the Program container and its side-set
// configuration: the output of one assembled .program block.
package program

import "github.com/dcrockford/pioasm/defines"

// Version names the target chip family; RP2350-only instruction sources
// (irq prev/next, wait jmppin) are rejected when Version is RP2040.
type Version int

const (
	RP2040 Version = iota
	RP2350
)

func (v Version) String() string {
	if v == RP2350 {
		return "rp2350"
	}
	return "rp2040"
}

// SideSetConfig mirrors the .side_set directive: count pins out of the
// 5-bit delay/side-set field, whether side-set is optional per
// instruction (side_en), and whether the side-set field drives pin
// directions instead of pin values.
type SideSetConfig struct {
	Count   int
	SideEn  bool
	PinDirs bool
}

// DelayWidth returns the number of bits available for the delay count
// given this configuration: 5 minus the side-set pin count, minus one
// more if side_en steals a bit for the per-instruction enable flag.
func (c SideSetConfig) DelayWidth() int {
	w := 5 - c.Count
	if c.SideEn {
		w--
	}
	return w
}

// Program is the assembled output of one .program block: its name,
// target version, side-set configuration, optional origin, the emitted
// opcode stream, its defines table, and optional wrap/wrap_target
// instruction indices.
type Program struct {
	Name       string
	PIOVersion Version
	SideSet    SideSetConfig
	Origin     *int
	Opcodes    []uint16
	Defines    *defines.Table
	WrapTarget *int
	Wrap       *int
	LangOpts   []LangOpt
}

// LangOpt records one ".lang_opt <lang> <key> = <rest-of-line>" directive,
// captured opaquely for tool-specific consumption.
type LangOpt struct {
	Lang string
	Key  string
	Rest string
}

// New returns an empty Program ready to receive instructions.
func New(name string, version Version) *Program {
	return &Program{
		Name:       name,
		PIOVersion: version,
		Defines:    defines.New(),
	}
}
