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

// Package sdlvga is an SDL window for the monitor. It implements the
// monitor.PixelRenderer interface.
//
// Lines arrive on the goroutine that steps the board. A completed frame is
// handed over to the window under a lock and is only copied to the SDL
// texture by Service(), which must be called from the main thread.
package sdlvga
