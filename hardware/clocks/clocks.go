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

// Package clocks defines the clock tree of the board and the bring-up of the
// external oscillator and main PLL.
//
//	+-------------+--------+
//	| HSE         | 8mhz   |
//	| SYSCLK      | 180mhz |
//	| HCLK        | 180mhz |
//	| APB2(PCLK2) | 90mhz  |
//	| APB1(PCLK1) | 45mhz  |
//	+-------------+--------+
//
// Timers on both APB buses run at twice the bus clock when the bus prescaler
// is not one, so all the timers used by the core are clocked at HCLK.
package clocks

// Clock frequencies in Hz.
const (
	HSE    = 8_000_000
	SYSCLK = 180_000_000
	HCLK   = SYSCLK
	PCLK1  = HCLK / 4
	PCLK2  = HCLK / 2

	// clock to the advanced and general purpose timers
	Timer = HCLK
)

// PLL configuration. PLL_VCO = (HSE / PLL_M) * PLL_N and SYSCLK = PLL_VCO /
// PLL_P.
const (
	PLL_M = 8
	PLL_N = 360
	PLL_P = 2
	PLL_Q = 7
	PLL_R = 6
)

// SysTickReload is the SysTick reload value for a one millisecond tick.
const SysTickReload = HCLK / 1000
