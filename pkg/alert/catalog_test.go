package alert

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	for _, name := range Builtins() {
		t.Run(name, func(t *testing.T) {
			def, ok := Lookup(name)
			assert.True(t, ok)
			assert.Equal(t, name, def.Name)
			assert.NotEmpty(t, def.Glyph)
			assert.True(t, strings.HasPrefix(def.VectorImage, "<svg"), "vector image should be inline svg")
			assert.True(t, strings.HasSuffix(def.VectorImage, "</svg>"))
		})
	}
}

func TestLookup_CaseSensitive(t *testing.T) {
	_, ok := Lookup("Note")
	assert.False(t, ok)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestBuiltins(t *testing.T) {
	names := Builtins()
	assert.True(t, sort.StringsAreSorted(names))
	for _, want := range []string{"note", "tip", "info", "important", "success", "warning", "caution", "danger"} {
		assert.Contains(t, names, want)
	}
}
