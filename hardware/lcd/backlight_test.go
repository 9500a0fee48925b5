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

package lcd_test

import (
	"sync"
	"testing"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/lcd"
	"github.com/arcadeit/arcadeit/hardware/scheduler"
	"github.com/arcadeit/arcadeit/hardware/timer"
	"github.com/arcadeit/arcadeit/test"
)

func tick(s *scheduler.Scheduler, n int) {
	for range n {
		s.Update()
		s.Run()
	}
}

func newBacklight(t *testing.T) (*lcd.Backlight, *timer.PWM, *scheduler.Scheduler) {
	t.Helper()
	tim := timer.NewTimer("TIM2")
	test.DemandSuccess(t, tim.SetPeriod(lcd.PWMSteps))
	pwm, err := tim.Channel(1)
	test.DemandSuccess(t, err)
	sched := scheduler.NewScheduler()
	return lcd.NewBacklight("LCD1", pwm, sched), pwm, sched
}

func TestClamp(t *testing.T) {
	bl, pwm, _ := newBacklight(t)
	test.ExpectEquality(t, bl.Level(), 0)

	bl.Set(150)
	test.ExpectEquality(t, bl.Level(), lcd.PWMSteps)
	test.ExpectEquality(t, pwm.Compare(), uint32(lcd.PWMSteps))
	test.ExpectEquality(t, pwm.Duty(), 1.0)
	bl.Inc()
	test.ExpectEquality(t, bl.Level(), lcd.PWMSteps)

	bl.Set(-3)
	test.ExpectEquality(t, bl.Level(), 0)
	bl.Dec()
	test.ExpectEquality(t, bl.Level(), 0)
	test.ExpectEquality(t, pwm.Compare(), uint32(0))

	bl.Set(25)
	bl.Inc()
	bl.Inc()
	bl.Dec()
	test.ExpectEquality(t, bl.Level(), 26)
	test.ExpectEquality(t, pwm.Duty(), 0.26)
	test.ExpectEquality(t, bl.String(), "LCD1: 26/100")
}

func TestConcurrentSteps(t *testing.T) {
	bl, pwm, _ := newBacklight(t)
	bl.Set(40)

	// key presses and fade steps can arrive from different goroutines
	var wg sync.WaitGroup
	for _, f := range []func(){bl.Inc, bl.Inc, bl.Dec} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				f()
			}
		}()
	}
	wg.Wait()

	test.ExpectEquality(t, bl.Level(), 60)
	test.ExpectEquality(t, pwm.Compare(), uint32(60))
}

func TestFade(t *testing.T) {
	bl, _, sched := newBacklight(t)

	test.DemandSuccess(t, bl.On(2))
	test.ExpectSuccess(t, sched.Running(2))

	// one step every FadeStepMS
	tick(sched, lcd.FadeStepMS*lcd.PWMSteps/2)
	test.ExpectEquality(t, bl.Level(), lcd.PWMSteps/2)
	tick(sched, lcd.FadeStepMS*lcd.PWMSteps/2)
	test.ExpectEquality(t, bl.Level(), lcd.PWMSteps)

	// the task ends by itself after PWMSteps steps
	test.ExpectFailure(t, sched.Running(2))

	test.DemandSuccess(t, bl.Off(2))
	tick(sched, lcd.FadeStepMS*lcd.PWMSteps)
	test.ExpectEquality(t, bl.Level(), 0)
	test.ExpectFailure(t, sched.Running(2))
}

func TestFadeReversed(t *testing.T) {
	bl, _, sched := newBacklight(t)
	bl.FadeStep = 1

	test.DemandSuccess(t, bl.On(0))
	tick(sched, 30)
	test.ExpectEquality(t, bl.Level(), 30)

	// fading out part of the way through a fade in replaces the task
	test.DemandSuccess(t, bl.Off(0))
	tick(sched, 10)
	test.ExpectEquality(t, bl.Level(), 20)
	tick(sched, 90)
	test.ExpectEquality(t, bl.Level(), 0)
	test.ExpectFailure(t, sched.Running(0))
}

func TestFadeInvalidTask(t *testing.T) {
	bl, _, _ := newBacklight(t)
	err := bl.On(scheduler.MaxTasks)
	test.ExpectSuccess(t, curated.Is(err, lcd.FadeTask))
	test.ExpectSuccess(t, curated.Has(err, scheduler.InvalidTaskID))
}
