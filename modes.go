// This file is part of ArcadeIT.
//
// ArcadeIT is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ArcadeIT is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ArcadeIT.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/digest"
	"github.com/arcadeit/arcadeit/gui/sdlvga"
	"github.com/arcadeit/arcadeit/hardware/board"
	"github.com/arcadeit/arcadeit/hardware/serial"
	"github.com/arcadeit/arcadeit/loader"
	"github.com/arcadeit/arcadeit/logger"
	"github.com/arcadeit/arcadeit/modalflag"
	"github.com/arcadeit/arcadeit/paths"
	"github.com/arcadeit/arcadeit/performance"
	"github.com/arcadeit/arcadeit/prefs"
	"github.com/arcadeit/arcadeit/statsview"
	"github.com/arcadeit/arcadeit/version"
	"github.com/bradleyjkemp/memviz"
	"github.com/mattn/go-colorable"
)

// default resource names
const (
	defaultPrefsFile = "arcadeit.prefs"
	defaultProfile   = "board.yaml"
)

// Sentinal error patterns.
const (
	StatsUnavailable = "run: stats server not available in this build"
)

// flags common to every mode that creates a board
type boardFlags struct {
	mode      *string
	prefs     *string
	prefsFile *string
	profile   *string
	image     *string
	log       *bool
}

func addBoardFlags(md *modalflag.Modes) boardFlags {
	return boardFlags{
		mode:      md.AddString("mode", "", "VGA resolution: VGA, HVGA, QVGA, QQVGA"),
		prefs:     md.AddString("prefs", "", "preferences for this run (key::value; key::value)"),
		prefsFile: md.AddString("prefsfile", "", fmt.Sprintf("preferences file. \"default\" for %s", paths.ResourcePath(defaultPrefsFile))),
		profile:   md.AddString("board", "", fmt.Sprintf("board profile (YAML). %s is used if present", paths.ResourcePath(defaultProfile))),
		image:     md.AddString("image", "", "picture to load into the framebuffer (binary or Intel HEX)"),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
}

// create and boot a board from the command line flags. the caller must Close()
// the board
func (f boardFlags) boot(ctx context.Context, console io.Writer) (*board.Board, error) {
	if *f.log {
		logger.SetEcho(logger.NewColorizer(colorable.NewColorableStdout()))
	} else {
		logger.SetEcho(nil)
	}

	group := *f.prefs
	if *f.mode != "" {
		group = fmt.Sprintf("vga.mode::%s; %s", *f.mode, group)
	}
	prefsFile := *f.prefsFile
	if prefsFile == "default" {
		prefsFile = paths.ResourcePath(defaultPrefsFile)
		if err := os.MkdirAll(filepath.Dir(prefsFile), 0o700); err != nil {
			return nil, err
		}
	}

	prefs.PushCommandLineStack(group)
	p, err := board.NewPrefs(prefsFile)
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "arcadeit", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	profileFile := *f.profile
	if profileFile == "" && paths.Exists(defaultProfile) {
		profileFile = paths.ResourcePath(defaultProfile)
	}

	profile := board.DefaultProfile()
	if profileFile != "" {
		r, err := os.Open(profileFile)
		if err != nil {
			return nil, err
		}
		profile, err = board.LoadProfile(r)
		r.Close()
		if err != nil {
			return nil, err
		}
	}

	b, err := board.NewBoard(p, profile, console)
	if err != nil {
		return nil, err
	}

	if err := b.Boot(ctx); err != nil {
		b.Close()
		return nil, err
	}

	if err := showPicture(b, *f.image); err != nil {
		b.Close()
		return nil, err
	}

	return b, nil
}

// fill the render framebuffer with the image, or with a test pattern if there
// is no image, and request the swap
func showPicture(b *board.Board, image string) error {
	if image == "" {
		testPattern(b.VGA)
		return nil
	}

	setPalette(b.VGA.RenderPalette())
	b.VGA.SwapPalette()

	ld := loader.NewLoader(image)
	if err := ld.Framebuffer(b.VGA.RenderFramebuffer()); err != nil {
		return err
	}
	b.VGA.SwapBuffer()
	logger.Logf(logger.Allow, "arcadeit", "loaded %s (%s)", ld.ShortName(), ld.Format)

	return nil
}

// window adapts sdlvga.Window to the GuiCreator interface
type window struct {
	*sdlvga.Window
	closed chan bool
}

func (w *window) Destroy(_ io.Writer) {
	w.Window.Destroy()
}

func (w *window) Service() {
	ok, err := w.Window.Service()
	if err != nil {
		logger.Log(logger.Allow, "sdlvga", err)
	}
	if !ok {
		select {
		case w.closed <- true:
		default:
		}
	}
}

func run(ctx context.Context, md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	bf := addBoardFlags(md)
	scale := md.AddInt("scale", 2, "window scaling")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return curated.Errorf(StatsUnavailable)
		}
		statsview.Launch(os.Stdout)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b, err := bf.boot(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer b.Close()

	closed := make(chan bool, 1)
	sync.creator <- func() (GuiCreator, error) {
		win, err := sdlvga.NewWindow(*scale)
		if err != nil {
			return nil, err
		}
		return &window{Window: win, closed: closed}, nil
	}

	var win *window
	select {
	case g := <-sync.creation:
		win = g.(*window)
	case err := <-sync.creationError:
		return err
	}

	// keys the main line code of the firmware would handle
	win.OnKey = func(key string, down bool) {
		if !down {
			return
		}
		switch key {
		case "Up":
			for _, bl := range b.Backlights {
				bl.Inc()
			}
		case "Down":
			for _, bl := range b.Backlights {
				bl.Dec()
			}
		case "Space":
			b.VGA.SwitchScreen(!b.VGA.ScreenOn())
		}
	}

	// the window must be a renderer before the hardware goroutine starts
	b.Monitor.AddPixelRenderer(win)

	done := make(chan error, 2)
	go func() { done <- b.Simulate(ctx) }()
	go func() { done <- b.MainLoop(ctx) }()

	select {
	case <-closed:
	case err = <-done:
	}
	cancel()

	return err
}

func headless(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	bf := addBoardFlags(md)
	frames := md.AddInt("frames", 60, "number of frames to run")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	b, err := bf.boot(ctx, output)
	if err != nil {
		return err
	}
	defer b.Close()

	dig := digest.NewVideo()
	b.Critical(func() { b.Monitor.AddPixelRenderer(dig) })

	if err := b.Run(ctx, *frames); err != nil {
		return err
	}

	st := b.VGA.Stats()
	fmt.Fprintf(output, "%d frames, %d lines, %d overruns\n", st.Frames, st.Lines, st.Overruns)
	fmt.Fprintf(output, "monitor: %d frames, %d sync errors\n", b.Monitor.Frames(), b.Monitor.SyncErrors())
	fmt.Fprintf(output, "digest: %s\n", dig.Hash())

	return nil
}

func perform(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	bf := addBoardFlags(md)
	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "none", "generate profiling information: cpu, mem, trace, all")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	b, err := bf.boot(ctx, io.Discard)
	if err != nil {
		return err
	}
	defer b.Close()

	return performance.Check(output, b, prof, *duration)
}

func ports(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	l, err := serial.Ports()
	if err != nil {
		return err
	}
	if len(l) == 0 {
		fmt.Fprintln(output, "no serial ports found")
	}
	for _, n := range l {
		fmt.Fprintln(output, n)
	}

	return nil
}

func tasks(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	bf := addBoardFlags(md)
	ms := md.AddInt("ms", 100, "milliseconds to run before the task table is shown")
	dot := md.AddString("dot", "", "write the task table as a graphviz file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	b, err := bf.boot(ctx, io.Discard)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.RunMillis(ctx, uint32(max(0, *ms))); err != nil {
		return err
	}

	state := b.Scheduler.State()
	fmt.Fprintf(output, "after %dms\n", b.Ticker.Millis())
	for _, ts := range state {
		fmt.Fprintln(output, ts)
	}

	if *dot != "" {
		f, err := os.Create(*dot)
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, &state)
	}

	return nil
}

func showVersion(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	rev := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(output, "%s %s\n", version.ApplicationName, v)
	if *rev {
		fmt.Fprintln(output, r)
	}
	return nil
}
