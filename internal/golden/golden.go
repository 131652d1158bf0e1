// Package golden compares rendered output with reference files.
package golden

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Kind marks a line of a Diff.
type Kind byte

const (
	Same    Kind = ' '
	Added   Kind = '+'
	Removed Kind = '-'
)

// Line is one line of a Diff, without its line terminator.
type Line struct {
	Kind Kind
	Text string
}

// Diff is a line diff from the reference (want) to the output (got).
type Diff struct {
	Lines []Line
}

// Equal reports whether the compared inputs were identical.
func (d *Diff) Equal() bool {
	for _, l := range d.Lines {
		if l.Kind != Same {
			return false
		}
	}
	return true
}

// Changed returns the number of added and removed lines.
func (d *Diff) Changed() (added, removed int) {
	for _, l := range d.Lines {
		switch l.Kind {
		case Added:
			added++
		case Removed:
			removed++
		}
	}
	return added, removed
}

// Compare diffs got against want line by line.
func Compare(got, want []byte) *Diff {
	a := splitLines(want)
	b := splitLines(got)

	d := &Diff{}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			d.add(Same, a[op.I1:op.I2])
		case 'd':
			d.add(Removed, a[op.I1:op.I2])
		case 'i':
			d.add(Added, b[op.J1:op.J2])
		case 'r':
			d.add(Removed, a[op.I1:op.I2])
			d.add(Added, b[op.J1:op.J2])
		}
	}
	return d
}

func (d *Diff) add(kind Kind, lines []string) {
	for _, l := range lines {
		d.Lines = append(d.Lines, Line{Kind: kind, Text: l})
	}
}

func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}

// WriteTo prints the diff with a gutter per line: "+ |" for lines only in
// the output, "- |" for lines only in the reference and "  |" otherwise.
func (d *Diff) WriteTo(w io.Writer) (int64, error) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	var buf bytes.Buffer
	for _, l := range d.Lines {
		switch l.Kind {
		case Added:
			buf.WriteString("+ |" + green.Sprint(l.Text) + "\n")
		case Removed:
			buf.WriteString("- |" + red.Sprint(l.Text) + "\n")
		default:
			buf.WriteString("  |" + l.Text + "\n")
		}
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// ErrNoReference is returned by Check when the reference file does not exist.
var ErrNoReference = errors.New("reference file not found")

// Check compares got with the reference file at path. With update set the
// reference is (re)written from got and the returned diff is empty.
func Check(path string, got []byte, update bool) (*Diff, error) {
	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create reference directory: %w", err)
		}
		if err := os.WriteFile(path, got, 0644); err != nil {
			return nil, fmt.Errorf("failed to write reference file: %w", err)
		}
		return Compare(got, got), nil
	}

	want, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (use --update to create it)", ErrNoReference, path)
		}
		return nil, fmt.Errorf("failed to read reference file: %w", err)
	}
	return Compare(got, want), nil
}
