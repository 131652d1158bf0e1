package alert

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"
	"go.uber.org/zap"
)

// Config configures one transform pass. The zero value uses the built-in
// types, vector image icons, the default marker and the Skip policy.
type Config struct {
	CustomTypes map[string]CustomType
	Icons       IconMode
	OnUnknown   UnknownPolicy
	Matcher     Matcher
	Logger      *zap.Logger
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Unknown records an alert block left unchanged because its type is unknown.
type Unknown struct {
	Type string
	Line int
}

// Report summarises a transform pass.
type Report struct {
	Rewritten int
	Unknown   []Unknown
}

// Apply rewrites every alert block in the tree rooted at doc in place.
// source is the text the tree was parsed from. A fresh Registry is built from
// cfg on every call; invalid custom types fail the call before the tree is
// touched, as does an unknown type under the Abort policy.
func Apply(doc ast.Node, source []byte, cfg Config) (*Report, error) {
	log := cfg.logger()

	reg, err := NewRegistry(cfg.CustomTypes)
	if err != nil {
		return nil, fmt.Errorf("build alert registry: %w", err)
	}
	det := NewDetector(cfg.Matcher)

	if cfg.OnUnknown == Abort {
		for m := range det.Scan(doc, source) {
			if _, err := reg.Resolve(m.Name); err != nil {
				return nil, &UnknownTypeError{Type: m.Name, Line: lineAt(source, m.Extent.Start)}
			}
		}
	}

	report := &Report{}
	for m := range det.Scan(doc, source) {
		line := lineAt(source, m.Extent.Start)
		def, err := reg.Resolve(m.Name)
		if err != nil {
			log.Warn("unknown alert type, block left unchanged",
				zap.String("type", m.Name),
				zap.Int("line", line))
			report.Unknown = append(report.Unknown, Unknown{Type: m.Name, Line: line})
			continue
		}

		parent, anchor := m.Node.Parent(), m.Node.NextSibling()
		if parent == nil {
			log.Debug("alert block has no parent, skipped", zap.String("type", m.Name))
			continue
		}
		replace(m, parent, anchor, Rewrite(m, def, cfg.Icons))
		report.Rewritten++

		log.Debug("rewrote alert block",
			zap.String("type", m.Name),
			zap.Int("line", line),
			zap.Stringer("icons", cfg.Icons))
	}
	return report, nil
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
