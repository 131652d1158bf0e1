package alert

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_BuiltinsOnly(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)
	assert.Equal(t, Builtins(), reg.Names())

	for _, name := range Builtins() {
		want, _ := Lookup(name)
		got, err := reg.Resolve(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		src, ok := reg.Source(name)
		assert.True(t, ok)
		assert.Equal(t, SourceBuiltin, src)
	}
}

func TestNewRegistry_CustomType(t *testing.T) {
	reg, err := NewRegistry(customTypes())
	require.NoError(t, err)

	def, err := reg.Resolve("custom")
	require.NoError(t, err)
	assert.Equal(t, Definition{Name: "custom", Glyph: "💻", VectorImage: customSVG}, def)

	src, _ := reg.Source("custom")
	assert.Equal(t, SourceCustom, src)
	assert.Contains(t, reg.Names(), "custom")
}

func TestNewRegistry_PartialOverride(t *testing.T) {
	builtin, _ := Lookup("note")

	tests := []struct {
		name   string
		custom CustomType
		want   Definition
	}{
		{
			name:   "glyph only",
			custom: CustomType{Glyph: "📝"},
			want:   Definition{Name: "note", Glyph: "📝", VectorImage: builtin.VectorImage},
		},
		{
			name:   "vector image only",
			custom: CustomType{VectorImage: "<svg></svg>"},
			want:   Definition{Name: "note", Glyph: builtin.Glyph, VectorImage: "<svg></svg>"},
		},
		{
			name:   "both",
			custom: CustomType{Glyph: "📝", VectorImage: "<svg></svg>"},
			want:   Definition{Name: "note", Glyph: "📝", VectorImage: "<svg></svg>"},
		},
		{
			name:   "neither keeps defaults",
			custom: CustomType{},
			want:   builtin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(map[string]CustomType{"note": tt.custom})
			require.NoError(t, err)

			got, err := reg.Resolve("note")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			src, _ := reg.Source("note")
			assert.Equal(t, SourceOverride, src)
		})
	}
}

func TestNewRegistry_OverrideDoesNotLeak(t *testing.T) {
	_, err := NewRegistry(map[string]CustomType{"tip": {Glyph: "X"}})
	require.NoError(t, err)

	reg, err := NewRegistry(nil)
	require.NoError(t, err)
	def, err := reg.Resolve("tip")
	require.NoError(t, err)
	assert.NotEqual(t, "X", def.Glyph)
}

func TestNewRegistry_InvalidCustomType(t *testing.T) {
	tests := []struct {
		name   string
		custom map[string]CustomType
		errMsg string
	}{
		{
			name:   "missing vector image",
			custom: map[string]CustomType{"laptop": {Glyph: "💻"}},
			errMsg: `custom alert type "laptop": vector image is required`,
		},
		{
			name:   "missing glyph",
			custom: map[string]CustomType{"laptop": {VectorImage: customSVG}},
			errMsg: `custom alert type "laptop": glyph is required`,
		},
		{
			name:   "missing both",
			custom: map[string]CustomType{"laptop": {}},
			errMsg: `custom alert type "laptop": glyph and vector image are required`,
		},
		{
			name:   "invalid name",
			custom: map[string]CustomType{"two words": {Glyph: "x", VectorImage: "<svg/>"}},
			errMsg: "only letters, digits and hyphens",
		},
		{
			name:   "empty name",
			custom: map[string]CustomType{"": {Glyph: "x", VectorImage: "<svg/>"}},
			errMsg: `custom alert type ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.custom)
			require.Error(t, err)
			assert.Nil(t, reg)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.Contains(t, err.Error(), tt.errMsg)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestNewRegistry_ReportsAllErrors(t *testing.T) {
	_, err := NewRegistry(map[string]CustomType{
		"zeta":  {Glyph: "z"},
		"alpha": {VectorImage: "<svg/>"},
		"ok":    {Glyph: "o", VectorImage: "<svg/>"},
	})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, `"alpha"`)
	assert.Contains(t, msg, `"zeta"`)
	assert.NotContains(t, msg, `"ok"`)
	assert.Less(t, strings.Index(msg, "alpha"), strings.Index(msg, "zeta"))
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)

	_, err = reg.Resolve("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.Equal(t, `unknown alert type "bogus"`, err.Error())

	_, ok := reg.Source("bogus")
	assert.False(t, ok)
}
