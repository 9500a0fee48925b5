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

// Package prefs holds the typed preference values used to configure the
// simulated board. Values can be saved to and loaded from a preferences file
// with the Disk type and can be overridden from the command line with groups
// of key/value pairs:
//
//	vga.mode::QVGA; lcd.fade::5
//
// Each value can have a hook that is called before the value changes, which
// can reject the new value, and a hook that is called after.
package prefs
