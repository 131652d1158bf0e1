// Package render converts markdown documents to HTML, rewriting alert blocks
// on the way.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/open-cli-collective/mdalert/pkg/alert"
)

// Options configures a single render.
type Options struct {
	Alert alert.Config
	// Document wraps the output in a complete HTML page.
	Document bool
	// Title overrides the page title taken from front matter.
	Title string
}

// Result is the outcome of a render.
type Result struct {
	HTML   []byte
	Title  string
	Report *alert.Report
}

// frontMatter holds the keys mdalert reads from a document's front matter.
// Alerts settings apply to that document only.
type frontMatter struct {
	Title  string `yaml:"title" toml:"title" json:"title"`
	Alerts struct {
		Icons     string `yaml:"icons" toml:"icons" json:"icons"`
		OnUnknown string `yaml:"on_unknown" toml:"on_unknown" json:"on_unknown"`
	} `yaml:"alerts" toml:"alerts" json:"alerts"`
}

// Render converts source to HTML. YAML, TOML or JSON front matter is removed
// from the output; its alerts section overrides opts.Alert for this document.
// Line numbers in the report refer to source, front matter included.
func Render(source []byte, opts Options) (*Result, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &fm)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	cfg, err := applyFrontMatter(opts.Alert, fm)
	if err != nil {
		return nil, err
	}

	md := newEngine(cfg)
	pc := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))

	offset := frontMatterLines(source, body)
	report, err := alert.ResultFrom(pc)
	if err != nil {
		var unknownErr *alert.UnknownTypeError
		if errors.As(err, &unknownErr) && unknownErr.Line > 0 {
			unknownErr.Line += offset
		}
		return nil, err
	}
	if report != nil {
		for i := range report.Unknown {
			report.Unknown[i].Line += offset
		}
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = fm.Title
	}

	out := buf.Bytes()
	if opts.Document {
		out = wrapDocument(title, out)
	}

	return &Result{HTML: out, Title: title, Report: report}, nil
}

func newEngine(cfg alert.Config) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			alert.New(cfg),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

func applyFrontMatter(cfg alert.Config, fm frontMatter) (alert.Config, error) {
	if fm.Alerts.Icons != "" {
		mode, err := alert.ParseIconMode(fm.Alerts.Icons)
		if err != nil {
			return cfg, fmt.Errorf("front matter: %w", err)
		}
		cfg.Icons = mode
	}
	if fm.Alerts.OnUnknown != "" {
		policy, err := alert.ParseUnknownPolicy(fm.Alerts.OnUnknown)
		if err != nil {
			return cfg, fmt.Errorf("front matter: %w", err)
		}
		cfg.OnUnknown = policy
	}
	return cfg, nil
}

// frontMatterLines counts the lines in front of body when body is a suffix of source.
func frontMatterLines(source, body []byte) int {
	if len(body) > len(source) || !bytes.HasSuffix(source, body) {
		return 0
	}
	return bytes.Count(source[:len(source)-len(body)], []byte("\n"))
}

func wrapDocument(title string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!doctype html>\n")
	buf.WriteString("<html lang=\"en\">\n")
	buf.WriteString("<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	if title != "" {
		buf.WriteString("<title>")
		buf.WriteString(html.EscapeString(title))
		buf.WriteString("</title>\n")
	}
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	buf.WriteString("</head>\n")
	buf.WriteString("<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n")
	buf.WriteString("</html>\n")
	return buf.Bytes()
}
