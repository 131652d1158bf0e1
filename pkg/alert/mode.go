package alert

import "fmt"

// IconMode selects how alert icons are represented for a whole pass.
type IconMode int

const (
	// VectorImage embeds the type's SVG markup. It is the default.
	VectorImage IconMode = iota
	// Glyph emits the type's short text glyph.
	Glyph
	// NoIcon emits no icon node at all.
	NoIcon
)

func (m IconMode) String() string {
	switch m {
	case VectorImage:
		return "vector-image"
	case Glyph:
		return "glyph"
	case NoIcon:
		return "none"
	default:
		return fmt.Sprintf("IconMode(%d)", int(m))
	}
}

// ParseIconMode parses an icon mode name. "svg" and "emoji" are accepted as
// aliases of "vector-image" and "glyph"; the empty string yields the default.
func ParseIconMode(s string) (IconMode, error) {
	switch s {
	case "", "vector-image", "svg":
		return VectorImage, nil
	case "glyph", "emoji":
		return Glyph, nil
	case "none":
		return NoIcon, nil
	default:
		return VectorImage, fmt.Errorf("invalid icon mode %q (valid: vector-image, glyph, none)", s)
	}
}

// UnknownPolicy decides what happens to alert blocks whose type cannot be resolved.
type UnknownPolicy int

const (
	// Skip leaves the block unchanged and records it in the Report.
	Skip UnknownPolicy = iota
	// Abort fails the whole pass before any block is rewritten.
	Abort
)

func (p UnknownPolicy) String() string {
	switch p {
	case Skip:
		return "skip"
	case Abort:
		return "abort"
	default:
		return fmt.Sprintf("UnknownPolicy(%d)", int(p))
	}
}

// ParseUnknownPolicy parses "skip" or "abort"; the empty string yields Skip.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch s {
	case "", "skip":
		return Skip, nil
	case "abort":
		return Abort, nil
	default:
		return Skip, fmt.Errorf("invalid unknown type policy %q (valid: skip, abort)", s)
	}
}
