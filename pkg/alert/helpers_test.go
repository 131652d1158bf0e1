package alert

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func parse(t *testing.T, src string, exts ...goldmark.Extender) (ast.Node, []byte) {
	t.Helper()
	source := []byte(src)
	doc := goldmark.New(goldmark.WithExtensions(exts...)).Parser().Parse(text.NewReader(source))
	return doc, source
}

func convert(t *testing.T, src string, cfg Config, exts ...goldmark.Extender) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(append(exts, New(cfg))...))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

// inlineText joins the text of the inline nodes under n. A block node's
// Text method returns its raw source lines, trigger included.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func countKind(root ast.Node, kind ast.NodeKind) int {
	n := 0
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == kind {
			n++
		}
		return ast.WalkContinue, nil
	})
	return n
}

const customSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 16 16"><path fill-rule="evenodd" d="M15 2H1c-.55 0-1 .45-1 1v9c0 .55.45 1 1 1h5.34c-.25.61-.86 1.39-2.34 2h8c-1.48-.61-2.09-1.39-2.34-2H15c.55 0 1-.45 1-1V3c0-.55-.45-1-1-1zm0 9H1V3h14v8z"></path></svg>`

func customTypes() map[string]CustomType {
	return map[string]CustomType{
		"custom": {Glyph: "💻", VectorImage: customSVG},
	}
}
