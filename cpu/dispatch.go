package cpu

import "github.com/wrnrlr/mos6502/memory"

// Machine bundles the registers, memory, decoder, resolver, and
// executor a single Step call sequences. It is the analog of the
// teacher's Chip, minus the per-cycle tick state this spec doesn't
// model.
type Machine struct {
	Regs     *Registers
	Mem      memory.Memory
	Decoder  *Decoder
	Resolver *Resolver
	Executor Executor
}

// MachineConfig configures a new Machine.
type MachineConfig struct {
	Mem      memory.Memory
	Executor Executor // defaults to NewNMOSExecutor() if nil
}

// NewMachine builds a Machine in power-on register state (spec.md §3):
// all registers zero except SP=0xFF. Callers set Regs.PC (typically
// from the word at ResetVector) before the first Step.
func NewMachine(cfg MachineConfig) *Machine {
	exec := cfg.Executor
	if exec == nil {
		exec = NewNMOSExecutor()
	}
	return &Machine{
		Regs:     NewRegisters(),
		Mem:      cfg.Mem,
		Decoder:  NewDecoder(),
		Resolver: NewResolver(),
		Executor: exec,
	}
}

// Step performs one fetch/decode/resolve/execute/writeback cycle and
// advances PC, per spec.md §4.7:
//  1. fetch the opcode byte at PC
//  2. decode it
//  3. compute PCNext (PC+1 for an Invalid slot, PC+ByteLength otherwise)
//  4. resolve the addressing mode
//  5. execute
//  6. commit the result via writeback (if non-None)
//  7. PC := PCNext
func (m *Machine) Step() error {
	regs := m.Regs
	opByte, err := m.Mem.ReadByte(regs.PC)
	if err != nil {
		return err
	}
	instr := m.Decoder.Decode(opByte)

	if instr.Opcode == Invalid {
		regs.PCNext = regs.PC + 1
	} else {
		regs.PCNext = regs.PC + uint16(instr.ByteLength)
	}

	// Invalid slots carry ModeNone, which Resolver.Resolve rejects; skip
	// straight to the executor so a lenient Executor (spec.md §6) gets a
	// chance to handle the opcode before the dispatcher gives up on it.
	var resolved Resolved
	if instr.Mode != ModeNone {
		var err error
		resolved, err = m.Resolver.Resolve(instr.Mode, m.Mem, regs)
		if err != nil {
			return err
		}
	}

	result, err := m.Executor.Execute(instr, resolved, m.Mem, regs)
	if err != nil {
		return err
	}

	if result.Kind != ResultNone {
		if err := Commit(instr.Writeback, result, resolved, m.Mem, regs); err != nil {
			return err
		}
	}

	regs.PC = regs.PCNext
	return nil
}
