// Package trace implements the drop-in executor described in spec.md
// §6: a decorator that wraps any cpu.Executor, prints one trace line
// per step, and never diverts the wrapped executor's own register or
// memory effects.
package trace

import (
	"fmt"
	"io"

	"github.com/wrnrlr/mos6502/cpu"
	"github.com/wrnrlr/mos6502/memory"
)

// Executor wraps an inner cpu.Executor and writes a trace line of the
// form "{pc:04x} : {mnemonic} &{addr:x} #{data:x}" to W before
// delegating. Wrap cpu.NewNMOSExecutor() for a tracing NMOS core, or a
// no-op Executor for a pure disassembly trace that never mutates state
// beyond the dispatcher's own PC advance.
type Executor struct {
	Inner cpu.Executor
	W     io.Writer
}

// New returns a tracing decorator around inner, writing to w.
func New(inner cpu.Executor, w io.Writer) *Executor {
	return &Executor{Inner: inner, W: w}
}

// Execute prints the trace line then delegates to Inner.
func (e *Executor) Execute(instr *cpu.Instruction, r cpu.Resolved, mem memory.Memory, regs *cpu.Registers) (cpu.ExecutionResult, error) {
	addr := "-"
	if r.HasAddress {
		addr = fmt.Sprintf("%x", r.Address)
	}
	data := "-"
	if r.HasData {
		data = fmt.Sprintf("%x", r.Data)
	}
	fmt.Fprintf(e.W, "%04x : %s &%s #%s\n", regs.PC, instr.Opcode, addr, data)
	return e.Inner.Execute(instr, r, mem, regs)
}

// NoopExecutor satisfies cpu.Executor by doing nothing and reporting no
// result, the "lenient" disassembler-style executor spec.md §6 allows:
// wrap it in Executor to get pure tracing with no side effects beyond
// the dispatcher's own PC advance (no flags, no stack, no writes).
type NoopExecutor struct{}

// Execute implements cpu.Executor and always returns ResultNone.
func (NoopExecutor) Execute(*cpu.Instruction, cpu.Resolved, memory.Memory, *cpu.Registers) (cpu.ExecutionResult, error) {
	return cpu.ExecutionResult{Kind: cpu.ResultNone}, nil
}
