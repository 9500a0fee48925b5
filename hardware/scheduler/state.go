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

package scheduler

import (
	"fmt"
	"strings"
)

// TaskState is a copy of the state of a single slot. It is intended for
// diagnostics.
type TaskState struct {
	ID           int
	Active       bool
	Ready        bool
	Period       uint32
	Cycles       uint32
	CurrentCycle uint32
	Countdown    uint32
	Params       []uint32
	Dispatched   uint64
	Failed       uint64
}

func (ts TaskState) String() string {
	if !ts.Active {
		return fmt.Sprintf("%d: inactive (dispatched %d)", ts.ID, ts.Dispatched)
	}
	cycles := "forever"
	if ts.Cycles != 0 {
		cycles = fmt.Sprintf("%d/%d", ts.CurrentCycle, ts.Cycles)
	}
	return fmt.Sprintf("%d: every %dms, %s, next in %dms (dispatched %d, failed %d)",
		ts.ID, ts.Period, cycles, ts.Countdown, ts.Dispatched, ts.Failed)
}

// State returns a copy of the state of every slot. Should be called from
// main-line code.
func (s *Scheduler) State() []TaskState {
	st := make([]TaskState, MaxTasks)
	for i := range s.tasks {
		t := &s.tasks[i]
		st[i] = TaskState{
			ID:           i,
			Ready:        t.execute.Load(),
			Countdown:    t.countdown.Load(),
			CurrentCycle: t.currentCycle,
			Dispatched:   t.dispatched,
			Failed:       t.failed,
		}
		if b := t.binding.Load(); b != nil {
			st[i].Active = true
			st[i].Period = b.period
			st[i].Cycles = b.cycles
			for w := range b.params.n {
				st[i].Params = append(st[i].Params, b.params.words[w])
			}
		}
	}
	return st
}

func (s *Scheduler) String() string {
	b := strings.Builder{}
	for _, ts := range s.State() {
		b.WriteString(ts.String())
		b.WriteString("\n")
	}
	return b.String()
}
