package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/briarwood/famicom/nes"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	pcStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// mode selects what the main pane shows; the command line at the
// bottom always accepts the same small verb set regardless of mode.
type mode int

const (
	modeRegisters mode = iota
	modeMemory
	modePPU
	modeSpew
)

// model is the debugger's entire UI + session state: breakpoints,
// the active view, and the last command's result, replacing
// console/bus.go's BIOS() switch-on-rune loop with bubbletea's
// Update/View split.
type model struct {
	console *nes.Console

	mode        mode
	breakpoints map[uint16]struct{}
	memLow      uint16
	memHigh     uint16
	traceLines  []string
	lastErr     string
	input       string
	quitting    bool
}

func newModel(c *nes.Console) model {
	return model{
		console:     c,
		breakpoints: make(map[uint16]struct{}),
		memLow:      0,
		memHigh:     0x00FF,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m = m.runCommand(strings.TrimSpace(m.input))
		m.input = ""
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)
		return m, nil
	}
	return m, nil
}

// runCommand parses and executes one REPL line. Unlike BIOS()'s single
// key presses, famidbg accepts short verbs so breakpoints and memory
// ranges can carry arguments.
func (m model) runCommand(line string) model {
	m.lastErr = ""
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m
	}

	switch fields[0] {
	case "s", "step":
		m.console.Step()
		m.traceLines = appendCapped(m.traceLines, m.console.Bus.CPU.Trace(), 20)

	case "r", "run":
		for i := 0; i < 1_000_000; i++ {
			m.console.Step()
			if m.console.Halted() {
				break
			}
			if _, hit := m.breakpoints[m.console.Bus.CPU.PC]; hit {
				break
			}
		}

	case "reset":
		m.console.Reset()

	case "b", "break":
		if addr, ok := m.parseAddr(fields, 1); ok {
			m.breakpoints[addr] = struct{}{}
		}

	case "clear":
		m.breakpoints = make(map[uint16]struct{})

	case "pc":
		if addr, ok := m.parseAddr(fields, 1); ok {
			m.console.Bus.CPU.PC = addr
		}

	case "mem":
		if lo, ok := m.parseAddr(fields, 1); ok {
			if hi, ok := m.parseAddr(fields, 2); ok {
				m.memLow, m.memHigh, m.mode = lo, hi, modeMemory
			}
		}

	case "corrupt":
		if len(fields) < 2 {
			m.lastErr = "usage: corrupt <xor-mask-hex>|off"
			break
		}
		if fields[1] == "off" {
			m.console.Bus.SetCorruption(nil)
			break
		}
		mask, err := strconv.ParseUint(fields[1], 16, 16)
		if err != nil {
			m.lastErr = err.Error()
			break
		}
		xor := uint16(mask)
		m.console.Bus.SetCorruption(func(addr uint16) uint16 { return addr ^ xor })

	case "reg":
		m.mode = modeRegisters
	case "ppu":
		m.mode = modePPU
	case "spew":
		m.mode = modeSpew

	case "input":
		if len(fields) < 2 {
			m.lastErr = "usage: input <mask-hex>"
			break
		}
		v, err := strconv.ParseUint(fields[1], 16, 8)
		if err != nil {
			m.lastErr = err.Error()
			break
		}
		m.console.Bus.Joypad().SetButtons(uint8(v))

	case "q", "quit":
		m.quitting = true

	default:
		m.lastErr = fmt.Sprintf("unknown command: %s", fields[0])
	}

	return m
}

func (m model) parseAddr(fields []string, idx int) (uint16, bool) {
	if idx >= len(fields) {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(fields[idx], "$"), 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

func appendCapped(lines []string, line string, cap int) []string {
	lines = append(lines, line)
	if len(lines) > cap {
		lines = lines[len(lines)-cap:]
	}
	return lines
}

func (m model) View() string {
	if m.quitting {
		return "famidbg exiting.\n"
	}

	var body string
	switch m.mode {
	case modeMemory:
		body = m.renderMemory()
	case modePPU:
		body = m.renderPPU()
	case modeSpew:
		body = m.console.Bus.CPU.DumpState()
	default:
		body = m.renderRegisters()
	}

	status := pcStyle.Render(fmt.Sprintf("PC=%04X", m.console.Bus.CPU.PC))
	if m.console.Halted() {
		status += "  " + errStyle.Render("HALTED")
	}

	var errLine string
	if m.lastErr != "" {
		errLine = "\n" + errStyle.Render(m.lastErr)
	}

	help := dimStyle.Render("step|run|reset|break $addr|clear|pc $addr|mem $lo $hi|reg|ppu|spew|input $mask|corrupt $mask|off|quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render("famidbg"),
		status,
		"",
		body,
		"",
		strings.Join(m.traceLines, "\n"),
		help,
		errLine,
		"> "+m.input,
	)
}

func (m model) renderRegisters() string {
	c := m.console.Bus.CPU
	return fmt.Sprintf("%s\nBRK last: %v", c.String(), m.console.BrokeOnBRK())
}

func (m model) renderMemory() string {
	var b strings.Builder
	cols := 16
	addr := m.memLow
	col := 0
	for addr <= m.memHigh {
		if col == 0 {
			fmt.Fprintf(&b, "%04X | ", addr)
		}
		if addr == m.console.Bus.CPU.PC {
			fmt.Fprintf(&b, "[%02X] ", m.console.Bus.Read(addr))
		} else {
			fmt.Fprintf(&b, " %02X  ", m.console.Bus.Read(addr))
		}
		col++
		if col == cols {
			b.WriteByte('\n')
			col = 0
		}
		if addr == 0xFFFF {
			break
		}
		addr++
	}
	return b.String()
}

func (m model) renderPPU() string {
	stats := m.console.Bus.Stats()
	return fmt.Sprintf("DMA stalls: %d\nchannels: %+v", stats.DMAStalls, m.console.Bus.APU.Channels())
}
