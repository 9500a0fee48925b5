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
	"io"
	"sync"
	"time"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/clocks"
	"github.com/arcadeit/arcadeit/hardware/dma"
	"github.com/arcadeit/arcadeit/hardware/gpio"
	"github.com/arcadeit/arcadeit/hardware/lcd"
	"github.com/arcadeit/arcadeit/hardware/scheduler"
	"github.com/arcadeit/arcadeit/hardware/serial"
	"github.com/arcadeit/arcadeit/hardware/systick"
	"github.com/arcadeit/arcadeit/hardware/timer"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/hardware/vga/monitor"
)

// Scheduler task slots used by the board. Slots below TaskHeartbeat are free
// for the application.
const (
	TaskHeartbeat = 2
	TaskBacklight = 3
)

// HeartbeatPeriod is the number of milliseconds between toggles of the status
// LED once the board is running.
const HeartbeatPeriod = 500

// Board is the driver context. All fields are exported for the benefit of the
// application and of the tests but should not be replaced after NewBoard().
type Board struct {
	// critical section. held while hardware is reprogrammed from main-line
	// code and while interrupt handlers run
	crit sync.Mutex

	Prefs   *Prefs
	Profile Profile

	HSE *clocks.Crystal
	PLL *clocks.Crystal

	Ticker    *systick.Tick
	Scheduler *scheduler.Scheduler

	// TIM8 paces the pixel DMA. TIM2 drives the backlight PWM
	PixelTimer     *timer.Timer
	BacklightTimer *timer.Timer

	Stream *dma.Stream
	Bus    *gpio.Port
	VSync  *gpio.Pin
	LED    *gpio.Pin

	VGA     *vga.Driver
	Monitor *monitor.Monitor

	Backlights []*lcd.Backlight

	// nil until Boot() has opened the serial port
	Serial  *serial.Serial
	console io.Writer

	// the period of each on/off phase of the failure blink. zero means the
	// LED blinks without a delay
	BlinkPeriod time.Duration

	// accumulated CPU cycles towards the next SysTick interrupt
	tickClocks uint32

	booted bool
}

// NewBoard is the preferred method of initialisation for the Board type. The
// console is where the serial port writes when the serial device preference
// is "-".
func NewBoard(prefs *Prefs, profile Profile, console io.Writer) (*Board, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		Prefs:          prefs,
		Profile:        profile,
		HSE:            clocks.NewCrystal("HSE", profile.HSEStartup),
		PLL:            clocks.NewCrystal("PLL", profile.PLLStartup),
		Scheduler:      scheduler.NewScheduler(),
		PixelTimer:     timer.NewTimer("TIM8"),
		BacklightTimer: timer.NewTimer("TIM2"),
		Bus:            gpio.NewPort("GPIOE"),
		VSync:          gpio.NewPin("VSYNC", true),
		LED:            gpio.NewPin("LED", false),
		console:        console,
		BlinkPeriod:    250 * time.Millisecond,
	}

	if b.console == nil {
		b.console = io.Discard
	}

	b.Ticker = systick.NewTick(b.Scheduler)
	b.Stream = dma.NewStream("DMA2S1", b.Bus)
	b.VGA = vga.NewDriver(b.PixelTimer, b.Stream, b.VSync, newCycleCounter())
	b.Stream.SetHandler(b.VGA.LineComplete)

	b.Monitor = monitor.NewMonitor(prefs.Spec())
	b.Bus.AddListener(b.Monitor)
	b.VSync.OnChange(b.Monitor.VSync)

	if err := b.BacklightTimer.SetPeriod(backlightPeriod); err != nil {
		return nil, curated.Errorf(BoardError, err)
	}
	for _, l := range profile.LCDs {
		pwm, err := b.BacklightTimer.Channel(l.Channel)
		if err != nil {
			return nil, curated.Errorf(BoardError, err)
		}
		b.Backlights = append(b.Backlights, lcd.NewBacklight(l.Name, pwm, b.Scheduler))
	}

	return b, nil
}

func (b *Board) String() string {
	return fmt.Sprintf("%s: %s", b.Profile.Name, b.VGA)
}

// Critical runs f with interrupts disabled.
func (b *Board) Critical(f func()) {
	b.crit.Lock()
	defer b.crit.Unlock()
	f()
}

// SetMode changes the video mode. The driver is restarted if it was running
// and the monitor resynchronises to the new timing.
func (b *Board) SetMode(m vga.Mode) error {
	var err error
	b.Critical(func() {
		err = b.VGA.ModeSet(m)
		if err != nil {
			return
		}
		b.Monitor.SetSpec(m.Spec)
	})
	return err
}

// Close the board. The video output is stopped and the serial port closed.
func (b *Board) Close() error {
	b.Critical(func() {
		b.VGA.Stop()
		b.BacklightTimer.Disable()
	})
	if b.Serial != nil {
		return b.Serial.Close()
	}
	return nil
}

// cycleCounter stands in for the DWT cycle counter. It counts host time as
// though it were measured at the CPU clock.
type cycleCounter struct {
	epoch time.Time
}

func newCycleCounter() *cycleCounter {
	return &cycleCounter{epoch: time.Now()}
}

// Cycles implements the vga.CycleCounter interface.
func (c *cycleCounter) Cycles() uint32 {
	return uint32(time.Since(c.epoch).Nanoseconds() * (clocks.SYSCLK / 1_000_000) / 1000)
}
