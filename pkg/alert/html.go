package alert

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// HTMLRenderer renders Alert and Icon nodes.
//
//	<div class="alert alert-note" data-alert-type="note">
//	<span class="alert-icon"><svg ...></svg></span>
//	<p>...</p>
//	</div>
type HTMLRenderer struct{}

func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAlert, r.renderAlert)
	reg.Register(KindIcon, r.renderIcon)
}

func (r *HTMLRenderer) renderAlert(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<div")
		html.RenderAttributes(w, node, nil)
		_, _ = w.WriteString(">\n")
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func (r *HTMLRenderer) renderIcon(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Icon)
	if entering {
		_, _ = w.WriteString(`<span class="alert-icon">`)
		// Vector images are trusted configuration and written verbatim.
		_, _ = w.Write(n.SVG)
	} else {
		_, _ = w.WriteString("</span>\n")
	}
	return ast.WalkContinue, nil
}
