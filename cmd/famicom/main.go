// Command famicom is the windowed host: it loads a ROM, wires up the
// core, and drives presentation/audio/input through ebiten while the
// core runs on its own goroutine, exactly as gintendo.go's
// ebiten.RunGame(gintendo) / go gintendo.Run(ctx) split does.
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/briarwood/famicom/cartridge"
	"github.com/briarwood/famicom/diag"
	"github.com/briarwood/famicom/joypad"
	"github.com/briarwood/famicom/mapper"
	"github.com/briarwood/famicom/nes"
	"github.com/briarwood/famicom/ppu"
)

const sampleRate = 44100

var (
	romPath     = flag.String("rom", "", "path to the .nes ROM file (required)")
	palettePath = flag.String("palette", "", "path to a .pal palette file (optional)")
	pcOverride  = flag.String("pc", "", "force the initial PC to a hex address instead of the reset vector")
	trace       = flag.Bool("trace", false, "log ignored-write diagnostics from the core to stderr (no per-instruction trace)")
	endOnBRK    = flag.Bool("end-on-brk", false, "stop the outer run loop the first time a BRK retires")
	ntsc        = flag.Bool("ntsc", true, "use NTSC timing (the only timing table implemented)")
	pal         = flag.Bool("pal", false, "use PAL timing (unimplemented; exits with a config error)")
	showHUD     = flag.Bool("hud", false, "overlay a DMA-stall counter in the corner of the window")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		var cfg *diag.ConfigError
		if errors.As(err, &cfg) {
			log.Fatalf("famicom: %v", err)
		}
		var fatal *diag.FatalDecodeError
		if errors.As(err, &fatal) {
			log.Fatalf("famicom: %v", err)
		}
		log.Fatalf("famicom: %v", err)
	}
}

func run() error {
	if *pal {
		return &diag.ConfigError{What: "-pal: only NTSC timing is implemented"}
	}
	if *romPath == "" {
		return &diag.ConfigError{What: "-rom is required"}
	}

	f, err := os.Open(*romPath)
	if err != nil {
		return &diag.ConfigError{What: "opening ROM", Err: err}
	}
	defer f.Close()

	cart, err := cartridge.Load(f)
	if err != nil {
		return err
	}
	if cart.MapperNumber() != 0 {
		return &diag.ConfigError{What: "only mapper 0 (NROM) is supported"}
	}
	m := mapper.New(cart)

	pal, err := loadPalette(*palettePath)
	if err != nil {
		return err
	}

	input := &ebitenInput{}
	console := nes.New(m, pal, input)
	console.SetEndOnBRK(*endOnBRK)
	console.Reset()

	if *pcOverride != "" {
		v, err := strconv.ParseUint(*pcOverride, 16, 16)
		if err != nil {
			return &diag.ConfigError{What: "parsing -pc", Err: err}
		}
		console.Bus.CPU.PC = uint16(v)
	}
	if *trace {
		console.Bus.SetLogger(log.Default())
	}

	host := &host{console: console, input: input}
	console.SetPresenter(host)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go console.Run(ctx)

	ebiten.SetWindowSize(ppu.Width*2, ppu.Height*2)
	ebiten.SetWindowTitle(*romPath)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	audioCtx := audio.NewContext(sampleRate)
	player := newSamplePlayer(audioCtx, console.Bus.APU.SampleRing())
	if err := player.Start(); err != nil {
		return err
	}

	return ebiten.RunGame(host)
}

// host adapts the core's frame/input contracts to ebiten's Game
// interface, mirroring console.Bus's dual role as ebiten.Game in the
// teacher but kept outside the core packages per the spec's
// "video/audio/input host backend is a collaborator" boundary.
type host struct {
	console *nes.Console
	input   *ebitenInput
	frame   []byte
}

// PresentFrame implements bus.Presenter.
func (h *host) PresentFrame(frame []byte) {
	h.frame = frame
}

func (h *host) Layout(int, int) (int, int) { return ppu.Width, ppu.Height }

func (h *host) Update() error {
	h.input.poll()
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	if h.frame == nil {
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, ppu.Width, ppu.Height))
	for i := 0; i < ppu.Width*ppu.Height; i++ {
		img.Pix[i*4+0] = h.frame[i*3+0]
		img.Pix[i*4+1] = h.frame[i*3+1]
		img.Pix[i*4+2] = h.frame[i*3+2]
		img.Pix[i*4+3] = 0xFF
	}
	if *showHUD {
		drawHUD(img, h.console)
	}
	screen.WritePixels(img.Pix)
}

func loadPalette(path string) (*ppu.Palette, error) {
	if path == "" {
		return ppu.DefaultPalette(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &diag.ConfigError{What: "opening palette", Err: err}
	}
	defer f.Close()
	return ppu.Load(f)
}

// ebitenInput maps ebiten's key state to the joypad's button mask;
// joypad.InputSource decouples the core from this entirely, unlike
// console/controller.go's direct ebiten.Key dependency.
type ebitenInput struct {
	mask uint8
}

var keyBindings = []struct {
	key    ebiten.Key
	button uint8
}{
	{ebiten.KeyZ, joypad.ButtonA},
	{ebiten.KeyX, joypad.ButtonB},
	{ebiten.KeyShift, joypad.ButtonSelect},
	{ebiten.KeyEnter, joypad.ButtonStart},
	{ebiten.KeyUp, joypad.ButtonUp},
	{ebiten.KeyDown, joypad.ButtonDown},
	{ebiten.KeyLeft, joypad.ButtonLeft},
	{ebiten.KeyRight, joypad.ButtonRight},
}

func (e *ebitenInput) poll() {
	var mask uint8
	for _, b := range keyBindings {
		if ebiten.IsKeyPressed(b.key) {
			mask |= b.button
		}
	}
	e.mask = mask
}

// Poll implements joypad.InputSource.
func (e *ebitenInput) Poll() uint8 { return e.mask }
