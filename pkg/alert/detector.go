package alert

import (
	"bytes"
	"fmt"
	"iter"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultMarker opens an alert block, e.g. ":::warning Mind the gap".
const DefaultMarker = ":::"

// Matcher recognises the trigger at the start of a block's leading text.
// extent is the number of bytes of text covered by the trigger, including
// any whitespace that separates it from the content.
type Matcher interface {
	Match(text []byte) (name string, extent int, ok bool)
}

// Closer is implemented by a Matcher whose syntax has a closing fence.
// Closes reports whether a line of text is that fence.
type Closer interface {
	Closes(line []byte) bool
}

// MarkerMatcher matches Marker immediately followed by a type name token.
// The token must be followed by whitespace or the end of the text.
type MarkerMatcher struct {
	Marker string
}

func (m MarkerMatcher) Match(text []byte) (string, int, bool) {
	marker := m.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	if !bytes.HasPrefix(text, []byte(marker)) {
		return "", 0, false
	}

	start := len(marker)
	i := start
	for i < len(text) && isTypeNameByte(text[i]) {
		i++
	}
	if i == start {
		return "", 0, false
	}
	if i < len(text) && !isSpace(text[i]) {
		return "", 0, false
	}
	return string(text[start:i]), skipSpaces(text, i), true
}

// Closes reports whether line is the marker alone, as in
//
//	:::note
//	Body text.
//	:::
func (m MarkerMatcher) Closes(line []byte) bool {
	marker := m.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	return bytes.Equal(bytes.TrimRight(line, " \t"), []byte(marker))
}

// RegexpMatcher matches a regular expression anchored at the start of the
// text. The type name is taken from the named group "type".
type RegexpMatcher struct {
	re    *regexp.Regexp
	group int
}

// NewRegexpMatcher compiles pattern, which must contain a (?P<type>...) group.
func NewRegexpMatcher(pattern string) (*RegexpMatcher, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile alert pattern: %w", err)
	}
	group := re.SubexpIndex("type")
	if group < 0 {
		return nil, fmt.Errorf("alert pattern %q has no (?P<type>...) group", pattern)
	}
	return &RegexpMatcher{re: re, group: group}, nil
}

func (m *RegexpMatcher) Match(text []byte) (string, int, bool) {
	loc := m.re.FindSubmatchIndex(text)
	if loc == nil || loc[2*m.group] < 0 {
		return "", 0, false
	}
	name := string(text[loc[2*m.group]:loc[2*m.group+1]])
	if !isTypeName(name) {
		return "", 0, false
	}
	return name, skipSpaces(text, loc[1]), true
}

// Match is a detected alert block. It is only valid until the tree is
// modified by something other than the consumer of the Scan that produced it.
type Match struct {
	// Name is the type name as written; it has not been resolved.
	Name string
	// Node is the block being replaced: a paragraph, text block or blockquote.
	Node ast.Node
	// Trigger is the text node that starts with the marker.
	Trigger *ast.Text
	// Extent is the source span of the marker, the type name and the
	// whitespace after it.
	Extent text.Segment
	// Content holds the block content that follows the trigger, in order.
	Content []ast.Node

	block  ast.Node
	source []byte
	closer Closer
}

// Detector finds alert blocks in a goldmark tree.
type Detector struct {
	matcher Matcher
}

// NewDetector returns a Detector using m, or MarkerMatcher with the default
// marker when m is nil.
func NewDetector(m Matcher) *Detector {
	if m == nil {
		m = MarkerMatcher{}
	}
	return &Detector{matcher: m}
}

// Scan walks the tree rooted at doc depth first. Siblings are visited in
// document order and a nested alert is yielded before the block containing
// it. The consumer may replace the yielded Match.Node in its parent; nodes
// inserted that way are not visited.
func (d *Detector) Scan(doc ast.Node, source []byte) iter.Seq[*Match] {
	return func(yield func(*Match) bool) {
		d.walk(doc, source, yield)
	}
}

func (d *Detector) walk(n ast.Node, source []byte, yield func(*Match) bool) bool {
	m := d.match(n, source)
	for c := n.FirstChild(); c != nil; {
		next := c.NextSibling()
		// A blockquote's trigger paragraph belongs to the blockquote match.
		if m == nil || c != m.block {
			if !d.walk(c, source, yield) {
				return false
			}
		}
		c = next
	}
	if m == nil {
		return true
	}

	if m.block == n {
		m.Content = []ast.Node{n}
	} else {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			m.Content = append(m.Content, c)
		}
	}
	return yield(m)
}

func (d *Detector) match(n ast.Node, source []byte) *Match {
	var block ast.Node
	switch n.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		block = n
	case ast.KindBlockquote:
		first := n.FirstChild()
		if first == nil || first.Kind() != ast.KindParagraph {
			return nil
		}
		block = first
	default:
		return nil
	}

	t, ok := block.FirstChild().(*ast.Text)
	if !ok {
		return nil
	}
	seg := t.Segment
	name, extent, ok := d.matcher.Match(seg.Value(source))
	if !ok {
		return nil
	}
	closer, _ := d.matcher.(Closer)
	return &Match{
		Name:    name,
		Node:    n,
		Trigger: t,
		Extent:  text.NewSegment(seg.Start, seg.Start+extent),
		block:   block,
		source:  source,
		closer:  closer,
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func skipSpaces(text []byte, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}
