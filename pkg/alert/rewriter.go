package alert

import (
	"github.com/yuin/goldmark/ast"
)

// Rewrite builds the replacement for m: an Alert whose first child is the
// icon for def in the given mode, followed by m.Content with the trigger
// and any closing fence removed. Content nodes are moved, not copied, except
// that a text block's inlines move into a new paragraph. Paragraphs left
// empty are dropped. Rewrite does not look inside the
// content for further alerts.
func Rewrite(m *Match, def Definition, mode IconMode) *Alert {
	newLine := stripTrigger(m)
	stripClosingFence(m, newLine)

	a := NewAlert(m.Name)
	a.SetBlankPreviousLines(m.Node.HasBlankPreviousLines())
	if icon := newIcon(def, mode); icon != nil {
		a.AppendChild(a, icon)
	}
	for _, c := range m.Content {
		if isEmptyText(c) {
			continue
		}
		if c.Kind() == ast.KindTextBlock {
			c = asParagraph(c)
		}
		a.AppendChild(a, c)
	}
	return a
}

// asParagraph moves the inline content of a text block into a new paragraph.
// Text blocks render without a <p> wrapper, which only suits tight list items.
func asParagraph(tb ast.Node) ast.Node {
	p := ast.NewParagraph()
	p.SetLines(tb.Lines())
	p.SetBlankPreviousLines(tb.HasBlankPreviousLines())
	for c := tb.FirstChild(); c != nil; {
		next := c.NextSibling()
		p.AppendChild(p, c)
		c = next
	}
	return p
}

func isEmptyText(n ast.Node) bool {
	k := n.Kind()
	return (k == ast.KindParagraph || k == ast.KindTextBlock) && !n.HasChildren()
}

func newIcon(def Definition, mode IconMode) *Icon {
	switch mode {
	case NoIcon:
		return nil
	case Glyph:
		icon := &Icon{}
		icon.AppendChild(icon, ast.NewString([]byte(def.Glyph)))
		return icon
	default:
		return &Icon{SVG: []byte(def.VectorImage)}
	}
}

// stripTrigger removes the trigger extent from the trigger text. A text node
// left empty is removed together with its line break, and the separating
// spaces are trimmed from the text that follows it: inline parsers such as
// linkify end a text node before every space, so they may start the next
// node. It reports whether the trigger took up its whole line.
func stripTrigger(m *Match) bool {
	t := m.Trigger
	t.Segment = t.Segment.WithStart(m.Extent.Stop)
	if t.Segment.Len() > 0 {
		return false
	}
	next := t.NextSibling()
	lineEnd := t.SoftLineBreak() || t.HardLineBreak()
	if p := t.Parent(); p != nil {
		p.RemoveChild(p, t)
	}
	if !lineEnd && m.source != nil {
		trimLeadingSpace(next, m.source)
	}
	return lineEnd
}

// stripClosingFence removes the closing fence from the end of the last
// content block: a final line holding nothing but the closing marker. When
// that block is the trigger block and the fence is its first remaining
// line, newLine tells whether the trigger ended the line before it.
func stripClosingFence(m *Match, newLine bool) {
	if m.closer == nil || m.source == nil || len(m.Content) == 0 {
		return
	}
	last := m.Content[len(m.Content)-1]
	if k := last.Kind(); k != ast.KindParagraph && k != ast.KindTextBlock {
		return
	}
	t, ok := last.LastChild().(*ast.Text)
	if !ok || !m.closer.Closes(t.Segment.Value(m.source)) {
		return
	}

	switch prev := t.PreviousSibling().(type) {
	case nil:
		if last == m.block && !newLine {
			return
		}
	case *ast.Text:
		if !prev.SoftLineBreak() && !prev.HardLineBreak() {
			return
		}
		prev.SetSoftLineBreak(false)
		prev.SetHardLineBreak(false)
	default:
		return
	}
	last.RemoveChild(last, t)
}

// trimLeadingSpace strips spaces and tabs from the start of the text run
// beginning at n, up to the end of its line. Text nodes left empty are removed.
func trimLeadingSpace(n ast.Node, source []byte) {
	for n != nil {
		t, ok := n.(*ast.Text)
		if !ok {
			return
		}
		t.Segment = t.Segment.WithStart(t.Segment.Start + skipSpaces(t.Segment.Value(source), 0))
		if t.Segment.Len() > 0 {
			return
		}
		next := n.NextSibling()
		lineEnd := t.SoftLineBreak() || t.HardLineBreak()
		if p := n.Parent(); p != nil {
			p.RemoveChild(p, n)
		}
		if lineEnd {
			return
		}
		n = next
	}
}

// replace splices a into the position m.Node occupied under parent, before
// anchor, which is nil when m.Node was the last child.
func replace(m *Match, parent, anchor ast.Node, a *Alert) {
	if m.Node.Parent() == parent {
		parent.RemoveChild(parent, m.Node)
	}
	if anchor != nil {
		parent.InsertBefore(parent, anchor, a)
	} else {
		parent.AppendChild(parent, a)
	}
}
