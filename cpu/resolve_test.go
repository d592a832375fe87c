package cpu

import (
	"testing"

	"github.com/wrnrlr/mos6502/memory"
)

func newTestMem() *memory.RAM {
	return memory.NewRAM(0x10000)
}

func TestResolveImmediate(t *testing.T) {
	mem := newTestMem()
	_ = mem.WriteByte(1, 0x42)
	r := NewRegisters()
	resolver := NewResolver()

	got, err := resolver.Resolve(Immediate, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.HasData || got.Data != 0x42 || !got.HasAddress || got.Address != 1 {
		t.Errorf("Resolve(Immediate) = %+v, want Data=0x42 Address=1", got)
	}
}

// TestResolveZeroPageXWrap mirrors spec scenario 5.
func TestResolveZeroPageXWrap(t *testing.T) {
	mem := newTestMem()
	_ = mem.WriteByte(1, 0x81)
	r := NewRegisters()
	r.X = 0x80
	resolver := NewResolver()

	got, err := resolver.Resolve(ZeroPageX, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Address != 0x01 {
		t.Errorf("Resolve(ZeroPageX) address = %#x, want 0x01", got.Address)
	}
}

// TestResolveRelative mirrors spec scenario 4's addressing math.
func TestResolveRelative(t *testing.T) {
	mem := newTestMem()
	_ = mem.WriteByte(0x11, 0xFF) // -1
	r := NewRegisters()
	r.PC = 0x10
	r.PCNext = 0x12
	resolver := NewResolver()

	got, err := resolver.Resolve(Relative, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Address != 0x11 {
		t.Errorf("Resolve(Relative) address = %#x, want 0x11", got.Address)
	}
}

func TestResolveIndirectX(t *testing.T) {
	mem := newTestMem()
	_ = mem.WriteByte(1, 0x20)   // operand
	_ = mem.WriteWord(0x24, 0x4000) // ptr table entry at (0x20+X)&0xFF
	_ = mem.WriteByte(0x4000, 0x99)
	r := NewRegisters()
	r.X = 0x04
	resolver := NewResolver()

	got, err := resolver.Resolve(IndirectX, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Address != 0x4000 || got.Data != 0x99 {
		t.Errorf("Resolve(IndirectX) = %+v, want Address=0x4000 Data=0x99", got)
	}
}

// TestResolveIndirectXPointerWrapsPageZero covers the pointer fetch
// itself wrapping within page 0 when base+X lands on $FF.
func TestResolveIndirectXPointerWrapsPageZero(t *testing.T) {
	mem := newTestMem()
	_ = mem.WriteByte(1, 0xFF) // operand, X=0 so ptr stays $FF
	_ = mem.WriteByte(0x00FF, 0x00)
	_ = mem.WriteByte(0x0000, 0x40) // high byte wraps to $00, not $100
	_ = mem.WriteByte(0x4000, 0x55)
	r := NewRegisters()
	resolver := NewResolver()

	got, err := resolver.Resolve(IndirectX, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Address != 0x4000 || got.Data != 0x55 {
		t.Errorf("Resolve(IndirectX) with ptr=0xff = %+v, want Address=0x4000 Data=0x55", got)
	}
}

// TestResolveIndirectYPointerWrapsPageZero covers the same wraparound
// on IndirectY's base pointer fetch.
func TestResolveIndirectYPointerWrapsPageZero(t *testing.T) {
	mem := newTestMem()
	_ = mem.WriteByte(1, 0xFF) // operand: base pointer is $FF
	_ = mem.WriteByte(0x00FF, 0x00)
	_ = mem.WriteByte(0x0000, 0x40) // high byte wraps to $00, not $100
	_ = mem.WriteByte(0x4005, 0x66)
	r := NewRegisters()
	r.Y = 0x05
	resolver := NewResolver()

	got, err := resolver.Resolve(IndirectY, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Address != 0x4005 || got.Data != 0x66 {
		t.Errorf("Resolve(IndirectY) with base=0xff = %+v, want Address=0x4005 Data=0x66", got)
	}
}

func TestResolveIndirectY(t *testing.T) {
	mem := newTestMem()
	_ = mem.WriteByte(1, 0x20)
	_ = mem.WriteWord(0x20, 0x4000)
	_ = mem.WriteByte(0x4005, 0x77)
	r := NewRegisters()
	r.Y = 0x05
	resolver := NewResolver()

	got, err := resolver.Resolve(IndirectY, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Address != 0x4005 || got.Data != 0x77 {
		t.Errorf("Resolve(IndirectY) = %+v, want Address=0x4005 Data=0x77", got)
	}
}

func TestResolveNoneFails(t *testing.T) {
	mem := newTestMem()
	r := NewRegisters()
	resolver := NewResolver()
	if _, err := resolver.Resolve(ModeNone, mem, r); err == nil {
		t.Error("Resolve(ModeNone) succeeded, want InvalidAddressingModeError")
	}
}

func TestResolveAccumulator(t *testing.T) {
	mem := newTestMem()
	r := NewRegisters()
	r.A = 0x55
	resolver := NewResolver()
	got, err := resolver.Resolve(Accumulator, mem, r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.HasAddress || !got.HasData || got.Data != 0x55 {
		t.Errorf("Resolve(Accumulator) = %+v, want HasAddress=false Data=0x55", got)
	}
}
