// Package alert rewrites marked markdown blocks into alert containers.
//
// A paragraph, text block or blockquote whose leading text starts with the
// alert marker and a type name, for example
//
//	:::warning Back up your data first.
//
// is replaced by an Alert node holding an icon for the type followed by the
// original content. Types come from a built-in catalog that callers can
// extend or override. The package works on goldmark ASTs and ships a
// goldmark extension with an HTML renderer for the new node kinds.
package alert

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.uber.org/zap"
)

const (
	priorityTransformer = 500
	priorityRenderer    = 500
)

// Extension is a goldmark.Extender that applies the alert transform to every
// parsed document and renders the resulting nodes as HTML.
type Extension struct {
	cfg Config
}

// New returns an Extension using cfg for every document it processes.
func New(cfg Config) *Extension {
	return &Extension{cfg: cfg}
}

func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&transformer{cfg: e.cfg}, priorityTransformer),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&HTMLRenderer{}, priorityRenderer),
		),
	)
}

var resultKey = parser.NewContextKey()

type result struct {
	report *Report
	err    error
}

// ResultFrom returns the report and error of the transform run while parsing
// with pc. Both are nil if no transform ran.
func ResultFrom(pc parser.Context) (*Report, error) {
	r, ok := pc.Get(resultKey).(*result)
	if !ok {
		return nil, nil
	}
	return r.report, r.err
}

type transformer struct {
	cfg Config
}

func (t *transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	report, err := Apply(doc, reader.Source(), t.cfg)
	if err != nil {
		t.cfg.logger().Error("alert transform failed, document left unchanged", zap.Error(err))
	}
	pc.Set(resultKey, &result{report: report, err: err})
}
