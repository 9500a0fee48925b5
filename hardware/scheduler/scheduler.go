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

// Package scheduler is the cooperative task scheduler of the board.
//
// The scheduler is a fixed table of MaxTasks slots. Slot numbers are chosen by
// the caller and are not allocated by the scheduler, so the set of tasks that
// can be active at the same time must be known in advance. Set() overwrites a
// slot unconditionally.
//
// Work is split between two contexts:
//
//	Update() is called from the SysTick interrupt once per millisecond. It
//	decrements the countdown of every active slot and marks slots whose
//	countdown has reached zero as ready. It never calls a task function so
//	the time spent in the interrupt is bounded by the size of the table.
//
//	Run() is called from the main loop. It dispatches every ready slot in
//	slot order, counts the cycle and disables slots that have used up their
//	cycles.
//
// The ready flag is the only state written by both contexts. Update() stores
// true and Run() clears it with a compare-and-swap before calling the task
// function. The store in Update() therefore happens-before the dispatch in
// Run(). Nothing is locked and a flag set while Run() is part way through the
// table is picked up on the next call to Run().
//
// The binding of a slot (function, parameters, cycles and period) is published
// as a single atomic pointer by Set() and withdrawn by Unset(). Update() and
// Run() only ever see a whole binding or no binding.
package scheduler

import (
	"sync/atomic"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/logger"
)

// MaxTasks is the number of slots in the task table.
const MaxTasks = 5

// Sentinal error patterns.
const (
	InvalidTaskID = "scheduler: invalid task id (%d)"
	NilCallback   = "scheduler: task %d: nil task function"
)

// Status is returned by a task function.
type Status int

// List of valid Status values.
const (
	StatusOK Status = iota
	StatusError
)

// Func is the signature for task functions. The parameters are those given
// to Set().
type Func func(p Params) Status

type binding struct {
	fn     Func
	params Params
	cycles uint32
	period uint32
}

type task struct {
	binding   atomic.Pointer[binding]
	countdown atomic.Uint32
	execute   atomic.Bool

	// only accessed by main-line code
	currentCycle uint32
	dispatched   uint64
	failed       uint64
}

// Scheduler is the task table. The zero value is an empty table and is ready
// for use.
type Scheduler struct {
	tasks [MaxTasks]task
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Init disables every slot and clears all counters.
func (s *Scheduler) Init() {
	for i := range s.tasks {
		t := &s.tasks[i]
		t.binding.Store(nil)
		t.execute.Store(false)
		t.countdown.Store(0)
		t.currentCycle = 0
		t.dispatched = 0
		t.failed = 0
	}
}

// Set the task in slot id. The task runs every period milliseconds, starting
// period milliseconds from now. A cycles value of zero means the task runs
// until it is unset.
//
// A period of zero is accepted and results in a task that runs every tick.
func (s *Scheduler) Set(id int, fn Func, params Params, cycles uint32, period uint32) error {
	if id < 0 || id >= MaxTasks {
		return curated.Errorf(InvalidTaskID, id)
	}
	if fn == nil {
		return curated.Errorf(NilCallback, id)
	}
	if period == 0 {
		logger.Logf(logger.Allow, "scheduler", "task %d has a zero period and will run every tick", id)
	}

	t := &s.tasks[id]

	// withdraw the existing binding before changing the counters so that
	// Update() cannot fire the old task with the new countdown
	t.binding.Store(nil)
	t.execute.Store(false)
	t.countdown.Store(period)
	t.currentCycle = 0
	t.binding.Store(&binding{
		fn:     fn,
		params: params,
		cycles: cycles,
		period: period,
	})

	return nil
}

// Unset disables the task in slot id. Unsetting a slot that is already
// disabled is allowed.
func (s *Scheduler) Unset(id int) error {
	if id < 0 || id >= MaxTasks {
		return curated.Errorf(InvalidTaskID, id)
	}
	s.unset(&s.tasks[id])
	return nil
}

func (s *Scheduler) unset(t *task) {
	t.binding.Store(nil)
	t.execute.Store(false)
}

// Running returns true if slot id holds an active task. Out of range slots are
// never running.
func (s *Scheduler) Running(id int) bool {
	if id < 0 || id >= MaxTasks {
		return false
	}
	return s.tasks[id].binding.Load() != nil
}

// Update is called once per tick from interrupt context.
//
// Implements the systick.Updater interface.
func (s *Scheduler) Update() {
	for i := range s.tasks {
		t := &s.tasks[i]

		b := t.binding.Load()
		if b == nil {
			continue
		}

		// decrement only while above zero. Set() is the only other writer of
		// the countdown
		c := t.countdown.Load()
		if c > 0 {
			c--
			t.countdown.Store(c)
		}

		if c == 0 {
			t.countdown.Store(b.period)
			t.execute.Store(true)
		}
	}
}

// Run dispatches every ready task. Called from the main loop.
func (s *Scheduler) Run() {
	for i := range s.tasks {
		t := &s.tasks[i]

		b := t.binding.Load()
		if b == nil {
			continue
		}

		if !t.execute.CompareAndSwap(true, false) {
			continue
		}

		t.dispatched++
		if b.fn(b.params) != StatusOK {
			t.failed++
			logger.Logf(logger.Allow, "scheduler", "task %d returned an error status", i)
		}

		// the task function may have replaced or unset its own slot. the
		// cycle count then belongs to the new binding, or to nothing
		if t.binding.Load() != b {
			continue
		}

		t.currentCycle++
		if b.cycles != 0 && t.currentCycle >= b.cycles {
			s.unset(t)
		}
	}
}
