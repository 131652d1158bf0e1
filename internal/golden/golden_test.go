package golden

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_Equal(t *testing.T) {
	d := Compare([]byte("a\nb\n"), []byte("a\nb\n"))
	assert.True(t, d.Equal())
	assert.Equal(t, []Line{{Same, "a"}, {Same, "b"}}, d.Lines)

	added, removed := d.Changed()
	assert.Zero(t, added)
	assert.Zero(t, removed)
}

func TestCompare_Empty(t *testing.T) {
	d := Compare(nil, nil)
	assert.True(t, d.Equal())
	assert.Empty(t, d.Lines)
}

func TestCompare_Changes(t *testing.T) {
	want := []byte("<div>\n<span>svg</span>\n<p>text</p>\n</div>\n")
	got := []byte("<div>\n<span>emoji</span>\n<p>text</p>\n<p>extra</p>\n</div>\n")

	d := Compare(got, want)
	assert.False(t, d.Equal())
	assert.Equal(t, []Line{
		{Same, "<div>"},
		{Removed, "<span>svg</span>"},
		{Added, "<span>emoji</span>"},
		{Same, "<p>text</p>"},
		{Added, "<p>extra</p>"},
		{Same, "</div>"},
	}, d.Lines)

	added, removed := d.Changed()
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestDiff_WriteTo(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	d := Compare([]byte("a\nc\n"), []byte("a\nb\n"))

	var buf bytes.Buffer
	_, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "  |a\n- |b\n+ |c\n", buf.String())
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "out", "svg.html")

	t.Run("missing reference", func(t *testing.T) {
		_, err := Check(ref, []byte("x\n"), false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoReference))
	})

	t.Run("update writes reference", func(t *testing.T) {
		d, err := Check(ref, []byte("x\n"), true)
		require.NoError(t, err)
		assert.True(t, d.Equal())

		data, err := os.ReadFile(ref)
		require.NoError(t, err)
		assert.Equal(t, "x\n", string(data))
	})

	t.Run("match", func(t *testing.T) {
		d, err := Check(ref, []byte("x\n"), false)
		require.NoError(t, err)
		assert.True(t, d.Equal())
	})

	t.Run("mismatch", func(t *testing.T) {
		d, err := Check(ref, []byte("y\n"), false)
		require.NoError(t, err)
		assert.False(t, d.Equal())
	})
}
