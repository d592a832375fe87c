package cpu

import "github.com/wrnrlr/mos6502/memory"

// Resolved carries the optional effective address and optional operand
// byte produced for one addressing mode.
type Resolved struct {
	HasAddress bool
	Address    uint16
	HasData    bool
	Data       uint8
}

// Resolver computes the effective address and/or operand byte for an
// addressing mode given the current registers and memory. It performs
// no mutation.
type Resolver struct{}

// NewResolver returns a stateless Resolver.
func NewResolver() *Resolver { return &Resolver{} }

// Resolve implements the table in spec §4.4. mem is read-only from the
// resolver's perspective.
func (Resolver) Resolve(mode AddressingMode, mem memory.Memory, regs *Registers) (Resolved, error) {
	switch mode {
	case Implicit:
		return Resolved{}, nil

	case Accumulator:
		return Resolved{HasData: true, Data: regs.A}, nil

	case Immediate:
		addr := regs.PC + 1
		data, err := mem.ReadByte(addr)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil

	case ZeroPage:
		zp, err := mem.ReadByte(regs.PC + 1)
		if err != nil {
			return Resolved{}, err
		}
		addr := uint16(zp)
		data, err := mem.ReadByte(addr)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil

	case ZeroPageX:
		return resolveZeroPageIndexed(mem, regs, regs.X)

	case ZeroPageY:
		return resolveZeroPageIndexed(mem, regs, regs.Y)

	case Relative:
		off, err := mem.ReadByte(regs.PC + 1)
		if err != nil {
			return Resolved{}, err
		}
		// Sign-extend the 8 bit offset and add with 16 bit wraparound.
		addr := regs.PCNext + uint16(int16(int8(off)))
		data, err := mem.ReadByte(addr)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil

	case Absolute:
		addr, err := mem.ReadWord(regs.PC + 1)
		if err != nil {
			return Resolved{}, err
		}
		data, err := mem.ReadByte(addr)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil

	case AbsoluteX:
		return resolveAbsoluteIndexed(mem, regs, regs.X)

	case AbsoluteY:
		return resolveAbsoluteIndexed(mem, regs, regs.Y)

	case Indirect:
		ptr, err := mem.ReadWord(regs.PC + 1)
		if err != nil {
			return Resolved{}, err
		}
		addr, err := mem.ReadWord(ptr)
		if err != nil {
			return Resolved{}, err
		}
		data, err := mem.ReadByte(addr)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil

	case IndirectX:
		base, err := mem.ReadByte(regs.PC + 1)
		if err != nil {
			return Resolved{}, err
		}
		ptr := uint16(base+regs.X) & 0xFF
		addr, err := readZeroPageWord(mem, ptr)
		if err != nil {
			return Resolved{}, err
		}
		data, err := mem.ReadByte(addr)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil

	case IndirectY:
		base, err := mem.ReadByte(regs.PC + 1)
		if err != nil {
			return Resolved{}, err
		}
		ptr, err := readZeroPageWord(mem, uint16(base))
		if err != nil {
			return Resolved{}, err
		}
		addr := ptr + uint16(regs.Y)
		data, err := mem.ReadByte(addr)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil

	default:
		return Resolved{}, InvalidAddressingModeError{PC: regs.PC}
	}
}

// resolveZeroPageIndexed implements ZeroPageX/ZeroPageY: the index is
// added before masking to 8 bits, so the effective address always
// stays within page 0.
func resolveZeroPageIndexed(mem memory.Memory, regs *Registers, index uint8) (Resolved, error) {
	zp, err := mem.ReadByte(regs.PC + 1)
	if err != nil {
		return Resolved{}, err
	}
	addr := uint16(zp+index) & 0xFF
	data, err := mem.ReadByte(addr)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil
}

// readZeroPageWord reads a little-endian word whose two bytes both
// live in page 0, wrapping the high byte back to $00 instead of
// spilling into page 1 (e.g. ptr=$FF reads $FF then $00, not $100).
// The generic memory.Memory.ReadWord has no notion of page boundaries,
// so IndirectX/IndirectY's pointer fetch can't use it directly.
func readZeroPageWord(mem memory.Memory, ptr uint16) (uint16, error) {
	lo, err := mem.ReadByte(ptr & 0xFF)
	if err != nil {
		return 0, err
	}
	hi, err := mem.ReadByte((ptr + 1) & 0xFF)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// resolveAbsoluteIndexed implements AbsoluteX/AbsoluteY.
func resolveAbsoluteIndexed(mem memory.Memory, regs *Registers, index uint8) (Resolved, error) {
	base, err := mem.ReadWord(regs.PC + 1)
	if err != nil {
		return Resolved{}, err
	}
	addr := base + uint16(index)
	data, err := mem.ReadByte(addr)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{HasAddress: true, Address: addr, HasData: true, Data: data}, nil
}
