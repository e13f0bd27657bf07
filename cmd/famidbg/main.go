// Command famidbg is a terminal debugger: it replaces console/bus.go's
// fmt.Scanf-driven BIOS REPL with a bubbletea/lipgloss TUI for single
// stepping the CPU, inspecting memory/PPU/APU state, and setting
// breakpoints, matching spec.md §1's "runtime tracing/logging
// formatters are left to host tooling."
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/briarwood/famicom/cartridge"
	"github.com/briarwood/famicom/mapper"
	"github.com/briarwood/famicom/nes"
	"github.com/briarwood/famicom/ppu"
)

var romPath = flag.String("rom", "", "path to the .nes ROM file (required)")

func main() {
	flag.Parse()
	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "famidbg: -rom is required")
		os.Exit(1)
	}

	f, err := os.Open(*romPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "famidbg:", err)
		os.Exit(1)
	}
	defer f.Close()

	cart, err := cartridge.Load(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "famidbg:", err)
		os.Exit(1)
	}

	console := nes.New(mapper.New(cart), ppu.DefaultPalette(), nil)
	console.Reset()

	m := newModel(console)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "famidbg:", err)
		os.Exit(1)
	}
}
