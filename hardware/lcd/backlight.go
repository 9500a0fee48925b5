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

// Package lcd controls the backlights of the LCD panels. Brightness is the
// compare value of a PWM channel. Fading in and out is done by a scheduler
// task that steps the brightness once every FadeStepMS milliseconds, so a fade
// never blocks the main loop.
package lcd

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/scheduler"
	"github.com/arcadeit/arcadeit/hardware/timer"
)

// PWMSteps is the number of brightness levels above zero. It is also the
// period of the PWM timer.
const PWMSteps = 100

// FadeStepMS is the default number of milliseconds between fade steps.
const FadeStepMS = 10

// Sentinal error patterns.
const (
	FadeTask = "lcd: %s: cannot schedule fade: %v"
)

// direction of a fade, passed to the fade task as a parameter
const (
	fadeOut uint32 = iota
	fadeIn
)

// Backlight is the backlight of one LCD panel.
type Backlight struct {
	name  string
	pwm   *timer.PWM
	sched *scheduler.Scheduler

	// milliseconds between fade steps
	FadeStep uint32

	// serialises changes of level and the PWM compare value. fade steps run
	// in the main loop and key presses arrive from the GUI thread
	crit  sync.Mutex
	level atomic.Int32
}

// NewBacklight is the preferred method of initialisation for the Backlight
// type. The backlight starts off.
func NewBacklight(name string, pwm *timer.PWM, sched *scheduler.Scheduler) *Backlight {
	bl := &Backlight{
		name:     name,
		pwm:      pwm,
		sched:    sched,
		FadeStep: FadeStepMS,
	}
	bl.Set(0)
	return bl
}

func (bl *Backlight) String() string {
	return fmt.Sprintf("%s: %d/%d", bl.name, bl.Level(), PWMSteps)
}

// Set the brightness. The value is clamped to the range 0 to PWMSteps.
func (bl *Backlight) Set(v int) {
	bl.crit.Lock()
	defer bl.crit.Unlock()
	bl.set(v)
}

func (bl *Backlight) set(v int) {
	v = max(0, min(PWMSteps, v))
	bl.level.Store(int32(v))
	bl.pwm.SetCompare(uint32(v))
}

// adjust the brightness by delta steps
func (bl *Backlight) adjust(delta int) {
	bl.crit.Lock()
	defer bl.crit.Unlock()
	bl.set(int(bl.level.Load()) + delta)
}

// Inc increases the brightness by one step.
func (bl *Backlight) Inc() {
	bl.adjust(1)
}

// Dec decreases the brightness by one step.
func (bl *Backlight) Dec() {
	bl.adjust(-1)
}

// Level returns the current brightness.
func (bl *Backlight) Level() int {
	return int(bl.level.Load())
}

// On fades the backlight up to full brightness using scheduler task id. Any
// task already in that slot is replaced.
func (bl *Backlight) On(id int) error {
	return bl.fade(id, fadeIn)
}

// Off fades the backlight down to zero using scheduler task id.
func (bl *Backlight) Off(id int) error {
	return bl.fade(id, fadeOut)
}

func (bl *Backlight) fade(id int, dir uint32) error {
	params, err := scheduler.NewParams(dir)
	if err != nil {
		return curated.Errorf(FadeTask, bl.name, err)
	}

	// PWMSteps steps is always enough to reach the limit from any level. the
	// step is clamped so the extra steps are harmless
	err = bl.sched.Set(id, bl.step, params, PWMSteps, bl.FadeStep)
	if err != nil {
		return curated.Errorf(FadeTask, bl.name, err)
	}
	return nil
}

func (bl *Backlight) step(p scheduler.Params) scheduler.Status {
	switch p.Word(0) {
	case fadeIn:
		bl.Inc()
	case fadeOut:
		bl.Dec()
	default:
		return scheduler.StatusError
	}
	return scheduler.StatusOK
}
