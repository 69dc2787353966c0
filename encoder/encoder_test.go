package encoder_test

import (
	"testing"

	"github.com/dcrockford/pioasm/encoder"
	"github.com/dcrockford/pioasm/ir"
	"github.com/dcrockford/pioasm/pioasmerr"
	"github.com/dcrockford/pioasm/program"
	"github.com/stretchr/testify/require"
)

func noSideSet() program.SideSetConfig { return program.SideSetConfig{} }

// S1 - empty nop
func TestEncoder_Nop(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	e.Nop()
	require.Nil(t, e.Err())
	require.Equal(t, []uint16{0xA042}, e.Opcodes())
}

// S2 - unconditional jmp to address 0
func TestEncoder_JmpAlways(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	e.Jmp(ir.CondAlways, ir.Int(0))
	require.Nil(t, e.Err())
	require.Equal(t, []uint16{0x0000}, e.Opcodes())
}

// S3 - set pins, 1
func TestEncoder_SetPins(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	e.Set(ir.SetDestPins, ir.Int(1))
	require.Nil(t, e.Err())
	require.Equal(t, []uint16{0xE001}, e.Opcodes())
}

// S4 - wait 1 gpio 5
func TestEncoder_WaitGPIO(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	e.Wait(1, ir.WaitGPIO, ir.IrqModNone, ir.Int(5), false)
	require.Nil(t, e.Err())
	require.Equal(t, []uint16{0x2085}, e.Opcodes())
}

// S5 - nop side 1 [3] with side_set count=1
func TestEncoder_SideAndDelay(t *testing.T) {
	cfg := program.SideSetConfig{Count: 1}
	e := encoder.New(cfg, program.RP2040)
	e.Nop()
	e.Delay(ir.Int(3))
	e.Side(ir.Int(1))
	require.Nil(t, e.Err())
	require.Equal(t, []uint16{0xB342}, e.Opcodes())
}

// S6 - push iffull noblock
func TestEncoder_PushIffullNoblock(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	e.Push(true, false)
	require.Nil(t, e.Err())
	require.Equal(t, []uint16{0x8040}, e.Opcodes())
}

func TestEncoder_PullDefaultsBlock(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	e.Pull(false, true)
	require.Nil(t, e.Err())
	require.Equal(t, []uint16{0x80A0}, e.Opcodes())
}

func TestValidateSideSetConfig_SideEnRequiresTwo(t *testing.T) {
	err := encoder.ValidateSideSetConfig(program.SideSetConfig{Count: 1, SideEn: true})
	require.NotNil(t, err)
	require.Equal(t, pioasmerr.InvalidSideSetConfig, err.Kind)
}

func TestEncoder_ProgramTooLong(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	for i := 0; i < 32; i++ {
		e.Nop()
	}
	require.Nil(t, e.Err())
	e.Nop()
	require.NotNil(t, e.Err())
}

func TestEncoder_OutOfRangeSetData(t *testing.T) {
	e := encoder.New(noSideSet(), program.RP2040)
	e.Set(ir.SetDestPins, ir.Int(100))
	require.NotNil(t, e.Err())
}

func TestEncoder_FieldIsolation(t *testing.T) {
	// Varying the jmp target must only change the low 5 bits.
	e1 := encoder.New(noSideSet(), program.RP2040)
	e1.Jmp(ir.CondAlways, ir.Int(3))
	e2 := encoder.New(noSideSet(), program.RP2040)
	e2.Jmp(ir.CondAlways, ir.Int(7))
	require.Equal(t, e1.Opcodes()[0]&^0x1f, e2.Opcodes()[0]&^0x1f)
	require.NotEqual(t, e1.Opcodes()[0]&0x1f, e2.Opcodes()[0]&0x1f)
}
