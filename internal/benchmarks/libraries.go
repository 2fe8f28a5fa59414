package benchmarks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/seqdiff"
)

type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

var Impls = []Impl{
	{
		Name: "seqdiff",
		Diff: func(x, y []byte) []byte {
			return unified(x, y)
		},
	},
	{
		Name: "seqdiff-patience",
		Diff: func(x, y []byte) []byte {
			return unified(x, y, seqdiff.UseAlgorithm(seqdiff.Patience))
		},
	},
	{
		Name: "seqdiff-lcs",
		Diff: func(x, y []byte) []byte {
			return unified(x, y, seqdiff.UseAlgorithm(seqdiff.LCS))
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, diff := range diffs {
				prefix := " "
				switch diff.Type {
				case diffmatchpatch.DiffInsert:
					prefix = "+"
				case diffmatchpatch.DiffDelete:
					prefix = "-"
				}
				for _, line := range strings.SplitAfter(diff.Text, "\n") {
					if line == "" {
						continue
					}
					buf.WriteString(prefix)
					buf.WriteString(line)
				}
			}

			return buf.Bytes()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a, b := 0, 0
			for _, ch := range changes {
				for a < ch.A {
					buf.WriteString(" ")
					buf.Write(d.x[a])
					a++
					b++
				}
				for i := range ch.Del {
					buf.WriteString("-")
					buf.Write(d.x[ch.A+i])
					a++
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.Write(d.y[ch.B+i])
					b++
				}
			}
			for a < len(d.x) {
				buf.WriteString(" ")
				buf.Write(d.x[a])
				a++
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
	},
}

type mb0lines struct {
	x [][]byte
	y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }

// unified compares x and y line by line and formats the result similar to diff -u. Lines that
// don't end in a newline are printed as is.
func unified(x, y []byte, opts ...seqdiff.Option) []byte {
	xlines := splitLines(x)
	ylines := splitLines(y)

	var buf bytes.Buffer
	for _, h := range seqdiff.Hunks(xlines, ylines, opts...) {
		fmt.Fprintf(&buf, "@@ -%d,%d +%d,%d @@\n", h.OldStart+1, h.OldLen(), h.NewStart+1, h.NewLen())
		for _, op := range h.Ops {
			if op.Tag == seqdiff.Equal {
				for _, line := range xlines[op.OldStart:op.OldEnd] {
					buf.WriteString(" ")
					buf.WriteString(line)
				}
				continue
			}
			for _, line := range xlines[op.OldStart:op.OldEnd] {
				buf.WriteString("-")
				buf.WriteString(line)
			}
			for _, line := range ylines[op.NewStart:op.NewEnd] {
				buf.WriteString("+")
				buf.WriteString(line)
			}
		}
	}
	return buf.Bytes()
}

func splitLines(b []byte) []string {
	lines := strings.SplitAfter(string(b), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
