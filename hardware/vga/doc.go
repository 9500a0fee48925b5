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

// Package vga is the video driver. It produces a VGA signal by streaming one
// scanline at a time from a line buffer to the 16-bit data bus, using a DMA
// stream in double-buffer mode triggered by the pixel timer.
//
// Horizontal sync is part of the streamed line. Bit 15 of the bus is the
// horizontal sync output and every sample has the bit set except for the run
// of samples that make up the sync pulse, which are zero. Vertical sync is a
// GPIO pin driven by the line complete interrupt according to the scanline
// count.
//
// The Driver is shared between the interrupt handler, LineComplete(), and the
// application. The application draws into the render framebuffer and render
// palette and then requests a swap with SwapBuffer() and SwapPalette(). The
// swaps happen together at the end of the frame so the picture never tears.
// The show framebuffer and show palette must not be written to by the
// application.
//
// Lower resolutions are produced by line multiplication. When a logical line
// is to be shown more than once, the line buffer that was last rendered is
// streamed again. No line is copied.
package vga
