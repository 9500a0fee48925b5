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

package board

import (
	"fmt"
	"strings"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/lcd"
	"github.com/arcadeit/arcadeit/hardware/serial"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/prefs"
)

// Sentinal error patterns.
const (
	InvalidPref = "board: invalid preference: %s"
)

// Prefs are the user preferences for the simulated board.
type Prefs struct {
	dsk *prefs.Disk

	// ID of the VGA resolution
	Mode prefs.String

	// milliseconds between backlight fade steps
	FadeStep prefs.Int

	// hang in the failure blink loop if boot fails
	HaltOnFailure prefs.Bool

	// serial device, as understood by serial.Open()
	SerialDevice prefs.String
	Baud         prefs.Int

	// limit the simulation to the frame rate of the VGA mode
	FPSCap prefs.Bool
}

func (p *Prefs) String() string {
	if p.dsk != nil {
		return p.dsk.String()
	}
	s := strings.Builder{}
	for _, e := range p.entries() {
		s.WriteString(fmt.Sprintf("%s :: %s\n", e.key, e.p))
	}
	return s.String()
}

type entry struct {
	key string
	p   prefs.Pref
}

func (p *Prefs) entries() []entry {
	return []entry{
		{"vga.mode", &p.Mode},
		{"lcd.fadestep", &p.FadeStep},
		{"board.halt", &p.HaltOnFailure},
		{"serial.device", &p.SerialDevice},
		{"serial.baud", &p.Baud},
		{"sim.fpscap", &p.FPSCap},
	}
}

// NewPrefs is the preferred method of initialisation for the Prefs type. If
// path is empty the preferences cannot be saved or loaded but values in the
// current command line group are still applied.
func NewPrefs(path string) (*Prefs, error) {
	p := &Prefs{}
	p.SetDefaults()

	p.Mode.SetHookPre(func(v prefs.Value) error {
		if _, ok := specification.SearchSpec(v.(string)); !ok {
			return curated.Errorf(InvalidPref, "unknown VGA mode "+v.(string))
		}
		return nil
	})
	p.FadeStep.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return curated.Errorf(InvalidPref, "fade step must be positive")
		}
		return nil
	})
	p.Baud.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return curated.Errorf(InvalidPref, "baud rate must be positive")
		}
		return nil
	})

	if path == "" {
		return p, p.applyCommandLine()
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	for _, e := range p.entries() {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}
	return p, p.dsk.Load(true)
}

// values from the command line are applied even when there is no file
func (p *Prefs) applyCommandLine() error {
	for _, e := range p.entries() {
		if ok, v := prefs.GetCommandLinePref(e.key); ok {
			if err := e.p.Set(v); err != nil {
				return curated.Errorf(prefs.DiskError, e.key, err)
			}
		}
	}
	return nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Prefs) SetDefaults() {
	_ = p.Mode.Set(defaultSpec.ID)
	_ = p.FadeStep.Set(lcd.FadeStepMS)
	_ = p.HaltOnFailure.Set(false)
	_ = p.SerialDevice.Set("-")
	_ = p.Baud.Set(serial.DefaultBaud)
	_ = p.FPSCap.Set(true)
}

// Spec returns the VGA resolution of the Mode preference.
func (p *Prefs) Spec() specification.Spec {
	if s, ok := specification.SearchSpec(p.Mode.String()); ok {
		return s
	}
	return defaultSpec
}

// Save the preferences.
func (p *Prefs) Save() error {
	if p.dsk == nil {
		return curated.Errorf(prefs.NoPath)
	}
	return p.dsk.Save()
}

// Load the preferences.
func (p *Prefs) Load() error {
	if p.dsk == nil {
		return curated.Errorf(prefs.NoPath)
	}
	return p.dsk.Load(false)
}
