// Package disassemble implements a disassembler for 6502 opcodes,
// built on top of the same decode table the core dispatcher uses.
package disassemble

import (
	"fmt"

	"github.com/wrnrlr/mos6502/cpu"
	"github.com/wrnrlr/mos6502/memory"
)

// Step disassembles the instruction at pc and returns a human-readable
// line plus the byte count the caller should advance by to reach the
// next instruction. It does not interpret the instruction, so a JMP
// target is printed but not followed. Invalid opcodes print as "???"
// and advance by 1, matching spec.md's treatment of undocumented slots.
func Step(pc uint16, mem memory.Memory, dec *cpu.Decoder) (string, int) {
	op, err := mem.ReadByte(pc)
	if err != nil {
		return fmt.Sprintf("%04x : <error: %v>", pc, err), 1
	}
	instr := dec.Decode(op)
	if instr.Opcode == cpu.Invalid {
		return fmt.Sprintf("%04x : ??? #%02x", pc, op), 1
	}

	operand := operandString(pc, mem, instr)
	return fmt.Sprintf("%04x : %s%s", pc, instr.Opcode, operand), instr.ByteLength
}

// operandString renders the instruction's raw operand bytes following
// the conventions of the addressing mode, without evaluating effective
// addresses relative to runtime register state (X/Y indexing is shown
// symbolically, not computed).
func operandString(pc uint16, mem memory.Memory, instr *cpu.Instruction) string {
	switch instr.Mode {
	case cpu.Implicit:
		return ""
	case cpu.Accumulator:
		return " A"
	case cpu.Immediate:
		b, _ := mem.ReadByte(pc + 1)
		return fmt.Sprintf(" #$%02x", b)
	case cpu.ZeroPage:
		b, _ := mem.ReadByte(pc + 1)
		return fmt.Sprintf(" $%02x", b)
	case cpu.ZeroPageX:
		b, _ := mem.ReadByte(pc + 1)
		return fmt.Sprintf(" $%02x,X", b)
	case cpu.ZeroPageY:
		b, _ := mem.ReadByte(pc + 1)
		return fmt.Sprintf(" $%02x,Y", b)
	case cpu.Relative:
		b, _ := mem.ReadByte(pc + 1)
		target := pc + 2 + uint16(int16(int8(b)))
		return fmt.Sprintf(" $%04x", target)
	case cpu.Absolute:
		w, _ := mem.ReadWord(pc + 1)
		return fmt.Sprintf(" $%04x", w)
	case cpu.AbsoluteX:
		w, _ := mem.ReadWord(pc + 1)
		return fmt.Sprintf(" $%04x,X", w)
	case cpu.AbsoluteY:
		w, _ := mem.ReadWord(pc + 1)
		return fmt.Sprintf(" $%04x,Y", w)
	case cpu.Indirect:
		w, _ := mem.ReadWord(pc + 1)
		return fmt.Sprintf(" ($%04x)", w)
	case cpu.IndirectX:
		b, _ := mem.ReadByte(pc + 1)
		return fmt.Sprintf(" ($%02x,X)", b)
	case cpu.IndirectY:
		b, _ := mem.ReadByte(pc + 1)
		return fmt.Sprintf(" ($%02x),Y", b)
	default:
		return ""
	}
}
