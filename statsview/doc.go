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

// Package statsview is a wrapper for the github.com/go-echarts/statsview
// package. The runtime statistics server is only available when the
// project is built with the statsview build tag:
//
//	go build -tags=statsview
//
// The server is useful for watching the allocation rate of the simulator.
// The scan-out path should not allocate once the generator is running and
// the heap graph should be flat.
package statsview

// Address is the address of the statistics server.
const Address = "localhost:12640"

// url path of the statistics page.
const url = "/debug/statsview"
