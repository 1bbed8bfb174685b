// This file is part of vgapico.
//
// vgapico is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vgapico is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with vgapico.  If not, see <https://www.gnu.org/licenses/>.

// Package terminal formats the status line shown by the run mode. The
// easyterm sub-package puts the terminal into the mode required to read
// single key presses.
package terminal

import "github.com/charmbracelet/lipgloss"

// Styles used by the status line.
type Styles struct {
	Label   lipgloss.Style
	Value   lipgloss.Style
	Good    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// ANSI Color reference
// 0	Black
// 1	Red
// 2	Green
// 3	Yellow
// 4	Blue
// 5	Magenta
// 6	Cyan
// 7	White

// NewStyles returns the default styles.
func NewStyles() Styles {
	return Styles{
		Label:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)),
		Good:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(0)).Background(lipgloss.ANSIColor(3)),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}
