package encoder

import "github.com/dcrockford/pioasm/ir"

// These tables mirror upioasm's opcodes.py bit-field dictionaries
// (jmp_cond, wait_source, in_source, out_dest, mov_dest, mov_source,
// set_dest) field for field; the mov source field is 3 bits matching the
// ISA (see DESIGN.md's Open Question log), not the 5 bits the original
// emitter's range check permitted.

var jmpCondBits = map[ir.Cond]uint16{
	ir.CondAlways:  0b000,
	ir.CondNotX:    0b001,
	ir.CondXDec:    0b010,
	ir.CondNotY:    0b011,
	ir.CondYDec:    0b100,
	ir.CondXNeY:    0b101,
	ir.CondPin:     0b110,
	ir.CondNotOSRE: 0b111,
}

var waitSourceBits = map[ir.WaitSource]uint16{
	ir.WaitGPIO: 0b00,
	ir.WaitPin:  0b01,
	ir.WaitIRQ:  0b10,
	// jmppin (rp2350) reuses the irq encoding at the bit level; Encoder
	// rejects it on rp2040 targets before this table is consulted.
	ir.WaitJmpPin: 0b10,
}

var inSourceBits = map[ir.InSource]uint16{
	ir.InPins: 0b000,
	ir.InX:    0b001,
	ir.InY:    0b010,
	ir.InNull: 0b011,
	ir.InISR:  0b110,
	ir.InOSR:  0b111,
}

var outDestBits = map[ir.OutDest]uint16{
	ir.OutPins:    0b000,
	ir.OutX:       0b001,
	ir.OutY:       0b010,
	ir.OutNull:    0b011,
	ir.OutPinDirs: 0b100,
	ir.OutPC:      0b101,
	ir.OutISR:     0b110,
	ir.OutOSR:     0b111,
}

var movDestBits = map[ir.MovDest]uint16{
	ir.MovDestPins: 0b000,
	ir.MovDestX:    0b001,
	ir.MovDestY:    0b010,
	ir.MovDestExec: 0b100,
	ir.MovDestPC:   0b101,
	ir.MovDestISR:  0b110,
	ir.MovDestOSR:  0b111,
}

var movSourceBits = map[ir.MovSource]uint16{
	ir.MovSrcPins:   0b000,
	ir.MovSrcX:      0b001,
	ir.MovSrcY:      0b010,
	ir.MovSrcNull:   0b011,
	ir.MovSrcStatus: 0b101,
	ir.MovSrcISR:    0b110,
	ir.MovSrcOSR:    0b111,
}

var movOpBits = map[ir.MovOp]uint16{
	ir.MovOpNone:    0b00,
	ir.MovOpInvert:  0b01,
	ir.MovOpReverse: 0b10,
}

var setDestBits = map[ir.SetDest]uint16{
	ir.SetDestPins:    0b000,
	ir.SetDestX:       0b001,
	ir.SetDestY:       0b010,
	ir.SetDestPinDirs: 0b100,
}
