package cpu

import "github.com/wrnrlr/mos6502/memory"

// Writeback commits an ExecutionResult to the instruction's declared
// target. Stack pushes/pops have already mutated SP and the stack
// region of mem inside Execute; WritebackSP exists only for table
// symmetry and never does further work here.
func Commit(target Writeback, result ExecutionResult, resolved Resolved, mem memory.Memory, regs *Registers) error {
	switch target {
	case NoWriteback:
		return nil

	case WritebackAccumulator:
		if result.Kind != ResultData {
			return MissingDataError{PC: regs.PC}
		}
		regs.A = result.Data
		return nil

	case WritebackX:
		if result.Kind != ResultData {
			return MissingDataError{PC: regs.PC}
		}
		regs.X = result.Data
		return nil

	case WritebackY:
		if result.Kind != ResultData {
			return MissingDataError{PC: regs.PC}
		}
		regs.Y = result.Data
		return nil

	case WritebackMemory:
		if result.Kind != ResultData {
			return MissingDataError{PC: regs.PC}
		}
		if !resolved.HasAddress {
			return MissingAddressError{PC: regs.PC}
		}
		return mem.WriteByte(resolved.Address, result.Data)

	case WritebackPC:
		if result.Kind != ResultAddress {
			return MissingAddressError{PC: regs.PC}
		}
		regs.PCNext = result.Address
		return nil

	case WritebackSP:
		return nil

	case WritebackPS:
		if result.Kind != ResultData {
			return MissingDataError{PC: regs.PC}
		}
		regs.P = result.Data
		return nil

	default:
		return nil
	}
}
