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

// Package gui defines the events sent from a graphical interface to the
// main loop of the application. Implementations of a graphical interface
// are in the sub-packages.
package gui

// KeyMod identifies the modifier keys held down during a keyboard event.
type KeyMod int

// List of valid key modifiers.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// EventID identifies the type of event.
type EventID int

// List of valid events.
const (
	// the window has been closed. there is no data
	EventWindowClose EventID = iota

	// a key has been pressed or released. the data is EventDataKeyboard
	EventKeyboard
)

// EventData represents the data that is associated with an event.
type EventData any

// Event is the structure that is passed over the event channel.
type Event struct {
	ID   EventID
	Data EventData
}

// EventDataKeyboard is the data that accompanies EventKeyboard events.
type EventDataKeyboard struct {
	Key  string
	Down bool
	Mod  KeyMod
}
