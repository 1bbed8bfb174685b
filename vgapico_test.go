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

package main

import (
	"os"
	"strings"
	"testing"

	"github.com/vgapico/vgapico/modalflag"
	"github.com/vgapico/vgapico/test"
)

func resourceDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".vgapico", 0700))
}

// modes prepares the modalflag.Modes instance in the same way as launch()
// and returns it ready for the mode function.
func modes(t *testing.T, w *test.Writer, args ...string) *modalflag.Modes {
	t.Helper()
	md := &modalflag.Modes{Output: w}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes(subModes...)
	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p, modalflag.ParseContinue)
	return md
}

func TestCheckMode(t *testing.T) {
	resourceDir(t)

	w := &test.Writer{}
	md := modes(t, w, "CHECK", "-frames", "1")
	test.ExpectEquality(t, md.Mode(), "CHECK")
	test.ExpectSuccess(t, check(md))
	test.ExpectSuccess(t, strings.Contains(w.String(), "frames: 1\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "missed: 0\n"))

	// a handler that takes longer than a line misses lines
	w.Clear()
	md = modes(t, w, "CHECK", "-frames", "1", "-prefs", "generator.irq.latency::9000")
	test.ExpectFailure(t, check(md))
}

func TestCheckDigest(t *testing.T) {
	resourceDir(t)

	w := &test.Writer{}
	md := modes(t, w, "CHECK", "-frames", "2", "-digest")
	test.DemandSuccess(t, check(md))
	first := w.String()
	test.ExpectSuccess(t, strings.Contains(first, "digest: "))

	// the same run produces the same output
	w.Clear()
	md = modes(t, w, "CHECK", "-frames", "2", "-digest")
	test.DemandSuccess(t, check(md))
	test.ExpectEquality(t, w.String(), first)
}

func TestCheckModeArguments(t *testing.T) {
	resourceDir(t)

	w := &test.Writer{}
	md := modes(t, w, "CHECK", "unexpected")
	test.ExpectFailure(t, check(md))

	md = modes(t, w, "CHECK", "-spec", "1024x768")
	test.ExpectFailure(t, check(md))
}

func TestCaptureMode(t *testing.T) {
	resourceDir(t)

	w := &test.Writer{}
	md := modes(t, w, "CAPTURE", "-decimate", "110", "capture.wav")
	test.DemandSuccess(t, record(md))

	_, err := os.Stat("capture.wav")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(w.String(), "written to capture.wav"))

	md = modes(t, w, "CAPTURE")
	test.ExpectFailure(t, record(md))
}

func TestMemvizMode(t *testing.T) {
	resourceDir(t)

	w := &test.Writer{}
	md := modes(t, w, "MEMVIZ", "ctx.dot")
	test.DemandSuccess(t, visualise(md))

	b, err := os.ReadFile("ctx.dot")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(b), "digraph"))
}

func TestPrefsMode(t *testing.T) {
	resourceDir(t)

	w := &test.Writer{}
	md := modes(t, w, "PREFS", "-reset")
	test.DemandSuccess(t, preferencesMode(md))
	test.ExpectSuccess(t, strings.Contains(w.String(), "generator.irq.latency"))
}

func TestPerformanceMode(t *testing.T) {
	resourceDir(t)

	w := &test.Writer{}
	md := modes(t, w, "PERFORMANCE", "-duration", "100ms")
	test.DemandSuccess(t, perform(md))
	test.ExpectSuccess(t, strings.Contains(w.String(), " fps ("))

	md = modes(t, w, "PERFORMANCE", "-profile", "disk")
	test.ExpectFailure(t, perform(md))
}

func TestVersionMode(t *testing.T) {
	w := &test.Writer{}
	md := modes(t, w, "VERSION")
	test.DemandSuccess(t, showVersion(md))
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "vgapico "))
}
