package alert

import (
	"github.com/yuin/goldmark/ast"
)

// KindAlert is the NodeKind of Alert.
var KindAlert = ast.NewNodeKind("Alert")

// Alert is the container block that replaces a detected alert block.
type Alert struct {
	ast.BaseBlock
	AlertType string
}

// ClassName returns the class attribute value used for alerts of the given type.
func ClassName(alertType string) string {
	return "alert alert-" + alertType
}

// NewAlert returns an empty Alert carrying the class and data attributes for alertType.
func NewAlert(alertType string) *Alert {
	a := &Alert{AlertType: alertType}
	a.SetAttributeString("class", []byte(ClassName(alertType)))
	a.SetAttributeString("data-alert-type", []byte(alertType))
	return a
}

func (n *Alert) Kind() ast.NodeKind { return KindAlert }

func (n *Alert) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"AlertType": n.AlertType}, nil)
}

// KindIcon is the NodeKind of Icon.
var KindIcon = ast.NewNodeKind("AlertIcon")

// Icon is the first child of an Alert. In vector image mode SVG holds raw
// markup written without escaping; in glyph mode the glyph is a child
// ast.String.
type Icon struct {
	ast.BaseInline
	SVG []byte
}

func (n *Icon) Kind() ast.NodeKind { return KindIcon }

func (n *Icon) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"SVG": string(n.SVG)}, nil)
}
