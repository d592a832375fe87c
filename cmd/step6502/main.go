// Command step6502 is a single-step TUI debugger: it loads a raw
// memory image, then steps the dispatcher one instruction per
// keypress, rendering the register file, flags, a disassembly window
// starting at PC, and the page-1 stack bytes starting at SP. Page 0 is
// not dumped.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrnrlr/mos6502/cpu"
	"github.com/wrnrlr/mos6502/disassemble"
	"github.com/wrnrlr/mos6502/memory"
)

func main() {
	var (
		image = flag.String("image", "", "path to a raw memory image to load")
		org   = flag.String("org", "0x0600", "address the image is loaded at and PC starts from")
	)
	flag.Parse()

	if *image == "" {
		log.Fatalf("step6502: -image is required")
	}
	offset, err := strconv.ParseUint(*org, 0, 16)
	if err != nil {
		log.Fatalf("step6502: bad -org %q: %v", *org, err)
	}

	data, err := os.ReadFile(*image)
	if err != nil {
		log.Fatalf("step6502: %v", err)
	}

	mem := memory.NewRAM(0x10000)
	for i, b := range data {
		addr := uint16(offset) + uint16(i)
		if err := mem.WriteByte(addr, b); err != nil {
			log.Fatalf("step6502: loading image: %v", err)
		}
	}

	m := cpu.NewMachine(cpu.MachineConfig{Mem: mem})
	m.Regs.PC = uint16(offset)

	if _, err := tea.NewProgram(model{machine: m}).Run(); err != nil {
		log.Fatalf("step6502: %v", err)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	pcStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type model struct {
	machine *cpu.Machine
	prevPC  uint16
	steps   int
	err     error
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "n":
		if m.err != nil {
			return m, nil
		}
		m.prevPC = m.machine.Regs.PC
		if err := m.machine.Step(); err != nil {
			m.err = err
			return m, nil
		}
		m.steps++
	}
	return m, nil
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render("step6502 — space/n: step, q: quit"),
		"",
		m.registers(),
		"",
		m.disassembly(),
		"",
		m.stackDump(),
		m.errorLine(),
	)
}

func (m model) registers() string {
	r := m.machine.Regs
	flags := []struct {
		name string
		set  bool
	}{
		{"N", r.Negative()}, {"V", r.Overflow()}, {"B", r.Break()},
		{"D", r.Decimal()}, {"I", r.InterruptDisable()}, {"Z", r.Zero()}, {"C", r.Carry()},
	}
	flagLine := ""
	for _, f := range flags {
		if f.set {
			flagLine += f.name + " "
		} else {
			flagLine += "_ "
		}
	}
	return fmt.Sprintf(
		"PC:%04x (was %04x)  A:%02x  X:%02x  Y:%02x  SP:%02x  steps:%d\nflags: %s",
		r.PC, m.prevPC, r.A, r.X, r.Y, r.SP, m.steps, flagLine,
	)
}

// disassembly renders the instruction at PC and the next four after
// it, without executing them.
func (m model) disassembly() string {
	dec := cpu.NewDecoder()
	pc := m.machine.Regs.PC
	lines := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		line, length := disassemble.Step(pc, m.machine.Mem, dec)
		if i == 0 {
			line = pcStyle.Render("-> " + line)
		} else {
			line = "   " + line
		}
		lines = append(lines, line)
		if length <= 0 {
			length = 1
		}
		pc += uint16(length)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// stackDump renders the eight page-1 bytes starting at the current
// stack pointer, wrapping within the page.
func (m model) stackDump() string {
	sp := m.machine.Regs.SP
	s := "stack: "
	for i := 0; i < 8; i++ {
		addr := uint16(0x0100) | uint16(sp+uint8(i))
		b, _ := m.machine.Mem.ReadByte(addr)
		s += fmt.Sprintf("%02x ", b)
	}
	return s
}

func (m model) errorLine() string {
	if m.err == nil {
		return ""
	}
	return "\n" + errStyle.Render(fmt.Sprintf("halted: %v", m.err))
}
