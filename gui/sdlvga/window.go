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

package sdlvga

import (
	"sync"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/veandco/go-sdl2/sdl"
)

// Sentinal error patterns.
const (
	SDL = "sdlvga: %v"
)

const pixelDepth = 4

// Window is a simple SDL implementation of the monitor.PixelRenderer
// interface.
type Window struct {
	// sdl stuff. only touched on the main thread
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	scale    int32

	// crit guards everything below
	crit sync.Mutex

	width  int32
	height int32

	// pixels is written by SetLine(). ready is the last complete frame and
	// is what Service() copies to the texture
	pixels []byte
	ready  []byte
	fresh  bool

	// the texture must be recreated by Service()
	resized bool

	// OnKey is called by Service() for every key press and release. The key
	// is the SDL name of the key.
	OnKey func(key string, down bool)
}

// NewWindow is the preferred method of initialisation for the Window type.
// The window is scale times the size of the resolution.
//
// MUST ONLY be called from the #mainthread
func NewWindow(scale int) (*Window, error) {
	win := &Window{scale: int32(max(1, scale))}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	// window size is set when the texture is created
	win.window, err = sdl.CreateWindow("ArcadeIT!",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		0, 0,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	win.renderer, err = sdl.CreateRenderer(win.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	// MOUSEMOTION events fill up the event queue pretty quickly and we have
	// no use for them
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	return win, nil
}

// Destroy the window.
//
// MUST ONLY be called from the #mainthread
func (win *Window) Destroy() {
	if win.texture != nil {
		_ = win.texture.Destroy()
	}
	_ = win.renderer.Destroy()
	_ = win.window.Destroy()
	sdl.Quit()
}

// Resize implements the monitor.PixelRenderer interface.
func (win *Window) Resize(spec specification.Spec) error {
	win.crit.Lock()
	defer win.crit.Unlock()

	win.width = int32(spec.Active)
	win.height = int32(spec.LinesActive)
	win.pixels = newPixels(spec.Active * spec.LinesActive)
	win.ready = newPixels(spec.Active * spec.LinesActive)
	win.resized = true
	win.fresh = false

	return nil
}

// the alpha channel is preset and never changes
func newPixels(n int) []byte {
	p := make([]byte, n*pixelDepth)
	for i := pixelDepth - 1; i < len(p); i += pixelDepth {
		p[i] = 255
	}
	return p
}

// SetLine implements the monitor.PixelRenderer interface.
func (win *Window) SetLine(y int, words []uint16) error {
	win.crit.Lock()
	defer win.crit.Unlock()

	if y < 0 || int32(y) >= win.height {
		return nil
	}

	i := y * int(win.width) * pixelDepth
	for x := 0; x < len(words) && int32(x) < win.width; x++ {
		r, g, b := vga.RGB(words[x])
		win.pixels[i] = r
		win.pixels[i+1] = g
		win.pixels[i+2] = b
		i += pixelDepth
	}

	return nil
}

// NewFrame implements the monitor.PixelRenderer interface.
func (win *Window) NewFrame(_ int) error {
	win.crit.Lock()
	defer win.crit.Unlock()

	win.pixels, win.ready = win.ready, win.pixels
	win.fresh = true

	return nil
}

// EndRendering implements the monitor.PixelRenderer interface.
func (win *Window) EndRendering() error {
	return nil
}

// Service handles SDL events and presents the most recent frame. Returns
// false if the window has been closed.
//
// MUST ONLY be called from the #mainthread
func (win *Window) Service() (bool, error) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false, nil

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				break
			}
			key := sdl.GetKeyName(ev.Keysym.Sym)
			if key == "Escape" {
				return false, nil
			}
			if win.OnKey != nil {
				win.OnKey(key, ev.Type == sdl.KEYDOWN)
			}
		}
	}

	win.crit.Lock()
	defer win.crit.Unlock()

	if win.resized {
		win.resized = false
		if err := win.createTexture(); err != nil {
			return true, err
		}
	}

	if !win.fresh || win.texture == nil {
		return true, nil
	}
	win.fresh = false

	if err := win.update(); err != nil {
		return true, err
	}
	if err := win.renderer.Copy(win.texture, nil, nil); err != nil {
		return true, curated.Errorf(SDL, err)
	}
	win.renderer.Present()

	return true, nil
}

// copy the ready frame to the streaming texture. the pitch of the texture
// can be wider than the frame
func (win *Window) update() error {
	tex, pitch, err := win.texture.Lock(nil)
	if err != nil {
		return curated.Errorf(SDL, err)
	}
	defer win.texture.Unlock()

	row := int(win.width) * pixelDepth
	for y := range int(win.height) {
		copy(tex[y*pitch:y*pitch+row], win.ready[y*row:(y+1)*row])
	}
	return nil
}

func (win *Window) createTexture() error {
	if win.texture != nil {
		_ = win.texture.Destroy()
		win.texture = nil
	}

	var err error
	win.texture, err = win.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		win.width, win.height)
	if err != nil {
		return curated.Errorf(SDL, err)
	}

	win.window.SetSize(win.width*win.scale, win.height*win.scale)
	if err := win.renderer.SetLogicalSize(win.width, win.height); err != nil {
		return curated.Errorf(SDL, err)
	}

	return nil
}
