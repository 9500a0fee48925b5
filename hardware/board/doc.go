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

// Package board is the driver context. It owns every subsystem of the core
// and the simulated peripherals they drive, and it is the only place where
// they are wired together.
//
// Boot() brings the board up in the same order as the firmware: clocks,
// serial banner, SysTick, scheduler, backlights and finally the video driver.
// A failure during boot is reported on the serial port and by blinking the
// status LED.
//
// The simulated timebase is driven by Step(), which completes one DMA line
// transfer and advances SysTick by the number of pixel clocks the line took.
// Simulate() calls Step() continuously on the hardware goroutine and
// MainLoop() runs the scheduler on the main-line goroutine. For deterministic
// use, Run() does both on the calling goroutine.
//
// Interrupt handlers run on the goroutine that calls Step(). The board's
// critical section lock stands in for disabling interrupts and is only used by
// code that reprograms the hardware.
package board
