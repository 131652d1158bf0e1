// Package view provides output formatting for mdalert commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/open-cli-collective/mdalert/pkg/alert"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted output format names.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an --output value. The empty string selects the default.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Renderer writes command output in one format. Messages go to the error
// writer so that rendered documents on stdout stay clean.
type Renderer struct {
	format Format
	writer io.Writer
	errw   io.Writer
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format: format,
		writer: os.Stdout,
		errw:   os.Stderr,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// SetErrWriter sets the writer used for status messages.
func (r *Renderer) SetErrWriter(w io.Writer) {
	r.errw = w
}

// RenderTable renders rows under headers. JSON output is a list of objects
// keyed by lower-cased header.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
		return
	case FormatPlain:
		for _, row := range rows {
			fmt.Fprintln(r.writer, strings.Join(row, "\t"))
		}
		return
	}

	tw := tabwriter.NewWriter(r.writer, 0, 4, 2, ' ', 0)
	bold := color.New(color.Bold)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, bold.Sprint(h))
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	result := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}
	_ = r.RenderJSON(result)
}

// RenderJSON renders an object as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderTypes lists the alert types of reg.
func (r *Renderer) RenderTypes(reg *alert.Registry) {
	headers := []string{"NAME", "GLYPH", "SOURCE", "SVG"}
	var rows [][]string
	for _, name := range reg.Names() {
		def, _ := reg.Resolve(name)
		src, _ := reg.Source(name)
		svg := def.VectorImage
		if r.format != FormatJSON {
			svg = Truncate(svg, 40)
		}
		rows = append(rows, []string{name, def.Glyph, string(src), svg})
	}
	r.RenderTable(headers, rows)
}

// RenderReport prints the unknown alert types found in file, if any.
func (r *Renderer) RenderReport(file string, report *alert.Report) {
	if report == nil {
		return
	}
	if file == "" {
		file = "<stdin>"
	}
	for _, u := range report.Unknown {
		r.Warning(fmt.Sprintf("%s:%d: unknown alert type %q left unchanged", file, u.Line, u.Type))
	}
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	_, _ = color.New(color.FgGreen).Fprintln(r.errw, "✓ "+msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	_, _ = color.New(color.FgYellow).Fprintln(r.errw, "! "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	_, _ = color.New(color.FgRed).Fprintln(r.errw, "✗ "+msg)
}

// Truncate truncates a string to the specified length in bytes.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
