package cpu

import "github.com/wrnrlr/mos6502/memory"

// Interrupt and reset vectors, per the canonical 6502 memory map.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// ResultKind discriminates the three shapes an ExecutionResult can take.
type ResultKind int

// Kinds of execution result.
const (
	ResultNone ResultKind = iota
	ResultData
	ResultAddress
)

// ExecutionResult is the executor's output: either nothing (flags-only),
// a data byte to be written back, or a target address for a branch or
// jump.
type ExecutionResult struct {
	Kind    ResultKind
	Data    uint8
	Address uint16
}

// Executor is a pure function of an instruction and its resolved
// operands to an ExecutionResult. It may mutate Registers.P (flags),
// Registers.SP (stack depth), and the stack region of mem, but defers
// A/X/Y/PC commits to the writeback unit.
type Executor interface {
	Execute(instr *Instruction, r Resolved, mem memory.Memory, regs *Registers) (ExecutionResult, error)
}

// NMOSExecutor implements the 151 official NMOS 6502 opcodes. Decimal
// mode is flag-manipulation only: D is settable/clearable but ADC/SBC
// never consult it.
type NMOSExecutor struct{}

// NewNMOSExecutor returns a stateless NMOSExecutor.
func NewNMOSExecutor() *NMOSExecutor { return &NMOSExecutor{} }

var dataResult = func(b uint8) ExecutionResult { return ExecutionResult{Kind: ResultData, Data: b} }
var addrResult = func(a uint16) ExecutionResult { return ExecutionResult{Kind: ResultAddress, Address: a} }
var noResult = ExecutionResult{Kind: ResultNone}

// Execute dispatches on instr.Opcode.
func (e *NMOSExecutor) Execute(instr *Instruction, r Resolved, mem memory.Memory, regs *Registers) (ExecutionResult, error) {
	op := instr.Opcode
	switch op {
	case ADC:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		return dataResult(e.adc(regs, r.Data)), nil

	case SBC:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		return dataResult(e.adc(regs, r.Data^0xFF)), nil

	case AND:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		v := regs.A & r.Data
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case ORA:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		v := regs.A | r.Data
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case EOR:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		v := regs.A ^ r.Data
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case ASL:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		regs.WriteFlag(pCarry, r.Data&0x80 != 0)
		v := r.Data << 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case LSR:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		regs.WriteFlag(pCarry, r.Data&0x01 != 0)
		v := r.Data >> 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case ROL:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		oldC := uint8(0)
		if regs.Carry() {
			oldC = 1
		}
		regs.WriteFlag(pCarry, r.Data&0x80 != 0)
		v := (r.Data << 1) | oldC
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case ROR:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		oldC := uint8(0)
		if regs.Carry() {
			oldC = 0x80
		}
		regs.WriteFlag(pCarry, r.Data&0x01 != 0)
		v := (r.Data >> 1) | oldC
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case CMP:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		e.compare(regs, regs.A, r.Data)
		return noResult, nil

	case CPX:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		e.compare(regs, regs.X, r.Data)
		return noResult, nil

	case CPY:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		e.compare(regs, regs.Y, r.Data)
		return noResult, nil

	case BIT:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		regs.WriteFlag(pZero, regs.A&r.Data == 0)
		regs.WriteFlag(pNegative, r.Data&0x80 != 0)
		regs.WriteFlag(pOverflow, r.Data&0x40 != 0)
		return noResult, nil

	case LDA, LDX, LDY:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		regs.setZeroNegative(r.Data)
		return dataResult(r.Data), nil

	case STA:
		return dataResult(regs.A), nil

	case STX:
		return dataResult(regs.X), nil

	case STY:
		return dataResult(regs.Y), nil

	case TAX:
		regs.setZeroNegative(regs.A)
		return dataResult(regs.A), nil

	case TAY:
		regs.setZeroNegative(regs.A)
		return dataResult(regs.A), nil

	case TXA:
		regs.setZeroNegative(regs.X)
		return dataResult(regs.X), nil

	case TYA:
		regs.setZeroNegative(regs.Y)
		return dataResult(regs.Y), nil

	case TSX:
		regs.setZeroNegative(regs.SP)
		return dataResult(regs.SP), nil

	case TXS:
		// TXS is the lone transfer that doesn't touch flags, and it
		// commits directly rather than through the writeback unit
		// (spec reserves Writeback SP as a no-op target).
		regs.SP = regs.X
		return noResult, nil

	case INC:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		v := r.Data + 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case DEC:
		if !r.HasData {
			return noResult, MissingDataError{PC: regs.PC, Op: op}
		}
		v := r.Data - 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case INX:
		v := regs.X + 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case DEX:
		v := regs.X - 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case INY:
		v := regs.Y + 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case DEY:
		v := regs.Y - 1
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case BCC:
		return e.branch(regs, r, !regs.Carry())
	case BCS:
		return e.branch(regs, r, regs.Carry())
	case BEQ:
		return e.branch(regs, r, regs.Zero())
	case BNE:
		return e.branch(regs, r, !regs.Zero())
	case BMI:
		return e.branch(regs, r, regs.Negative())
	case BPL:
		return e.branch(regs, r, !regs.Negative())
	case BVC:
		return e.branch(regs, r, !regs.Overflow())
	case BVS:
		return e.branch(regs, r, regs.Overflow())

	case JMP:
		if !r.HasAddress {
			return noResult, MissingAddressError{PC: regs.PC, Op: op}
		}
		return addrResult(r.Address), nil

	case JSR:
		if !r.HasAddress {
			return noResult, MissingAddressError{PC: regs.PC, Op: op}
		}
		pushWord(mem, regs, regs.PCNext-1)
		return addrResult(r.Address), nil

	case RTS:
		target, err := popWord(mem, regs)
		if err != nil {
			return noResult, err
		}
		return addrResult(target + 1), nil

	case RTI:
		p, err := popByte(mem, regs)
		if err != nil {
			return noResult, err
		}
		regs.P = p
		target, err := popWord(mem, regs)
		if err != nil {
			return noResult, err
		}
		return addrResult(target), nil

	case PHA:
		pushByte(mem, regs, regs.A)
		return noResult, nil

	case PHP:
		pushByte(mem, regs, regs.P|pBreak)
		return noResult, nil

	case PLA:
		v, err := popByte(mem, regs)
		if err != nil {
			return noResult, err
		}
		regs.setZeroNegative(v)
		return dataResult(v), nil

	case PLP:
		v, err := popByte(mem, regs)
		if err != nil {
			return noResult, err
		}
		return dataResult(v), nil

	case CLC:
		regs.ClearFlag(pCarry)
		return noResult, nil
	case SEC:
		regs.SetFlag(pCarry)
		return noResult, nil
	case CLD:
		regs.ClearFlag(pDecimal)
		return noResult, nil
	case SED:
		regs.SetFlag(pDecimal)
		return noResult, nil
	case CLI:
		regs.ClearFlag(pInterrupt)
		return noResult, nil
	case SEI:
		regs.SetFlag(pInterrupt)
		return noResult, nil
	case CLV:
		regs.ClearFlag(pOverflow)
		return noResult, nil

	case BRK:
		// B is set on the pushed status byte only: it is never
		// observable on regs.P outside of a BRK in progress.
		pushWord(mem, regs, regs.PCNext)
		pushByte(mem, regs, regs.P|pBreak)
		vector, err := mem.ReadWord(IRQVector)
		if err != nil {
			return noResult, err
		}
		return addrResult(vector), nil

	case NOP:
		return noResult, nil

	default:
		return noResult, InvalidInstructionError{PC: regs.PC, Byte: instr.RawByte}
	}
}

// adc implements ADC; SBC reuses it with the operand complemented by
// the caller.
func (e *NMOSExecutor) adc(regs *Registers, data uint8) uint8 {
	carryIn := uint16(0)
	if regs.Carry() {
		carryIn = 1
	}
	sum := uint16(regs.A) + uint16(data) + carryIn
	result := uint8(sum)
	regs.WriteFlag(pCarry, sum > 0xFF)
	regs.setZeroNegative(result)
	regs.WriteFlag(pOverflow, (regs.A^result)&(data^result)&0x80 != 0)
	return result
}

// compare implements CMP/CPX/CPY: flags only, no writeback of data.
func (e *NMOSExecutor) compare(regs *Registers, reg, data uint8) {
	diff := uint16(reg) - uint16(data)
	regs.WriteFlag(pCarry, reg >= data)
	regs.WriteFlag(pZero, reg == data)
	regs.WriteFlag(pNegative, uint8(diff)&0x80 != 0)
}

// branch implements the eight conditional branches: taken branches
// return the resolved target address, untaken branches return None so
// the dispatcher's normal PC advance stands.
func (e *NMOSExecutor) branch(regs *Registers, r Resolved, taken bool) (ExecutionResult, error) {
	if !taken {
		return noResult, nil
	}
	if !r.HasAddress {
		return noResult, MissingAddressError{PC: regs.PC, Op: BEQ}
	}
	return addrResult(r.Address), nil
}

// pushByte writes val to the stack page and decrements SP, wrapping
// modulo 256. Page 1 (0x0100-0x01FF) is always in range for any memory
// sized per spec.md, so the write error is discarded.
func pushByte(mem memory.Memory, regs *Registers, val uint8) {
	_ = mem.WriteByte(0x0100+uint16(regs.SP), val)
	regs.SP--
}

// popByte increments SP (wrapping modulo 256) and reads the stack page.
func popByte(mem memory.Memory, regs *Registers) (uint8, error) {
	regs.SP++
	return mem.ReadByte(0x0100 + uint16(regs.SP))
}

// pushWord pushes the high byte then the low byte, so the low byte
// ends up at the lower address (little-endian on pop).
func pushWord(mem memory.Memory, regs *Registers, val uint16) {
	pushByte(mem, regs, uint8(val>>8))
	pushByte(mem, regs, uint8(val&0xFF))
}

// popWord pops the low byte then the high byte, the inverse of
// pushWord.
func popWord(mem memory.Memory, regs *Registers) (uint16, error) {
	lo, err := popByte(mem, regs)
	if err != nil {
		return 0, err
	}
	hi, err := popByte(mem, regs)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}
