package root

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "render", "check", "types", "config", "completion"})
}

func TestNewCmdRoot_RenderFromStdin(t *testing.T) {
	t.Setenv("MDALERT_ICONS", "")
	t.Setenv("MDALERT_ON_UNKNOWN", "")
	t.Setenv("MDALERT_MARKER", "")

	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetIn(bytes.NewBufferString(":::note Hello\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"render",
		"--config", filepath.Join(t.TempDir(), "config.yml"),
		"--no-color",
		"--icons", "glyph",
		"--out", filepath.Join(t.TempDir(), "out.html"),
	})

	require.NoError(t, cmd.Execute())
}

func TestNewCmdRoot_CheckRequiresGolden(t *testing.T) {
	cmd := NewCmdRoot()
	cmd.SetArgs([]string{"check", "doc.md"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "golden")
}

func TestNewCmdRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "mdalert version dev")
}

func TestNewCmdRoot_FlagValueCompletion(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"render", "--icons", ""}, []string{"vector-image", "glyph", "none"}},
		{[]string{"render", "--on-unknown", ""}, []string{"skip", "abort"}},
		{[]string{"check", "--icons", ""}, []string{"vector-image", "glyph", "none"}},
		{[]string{"types", "--output", ""}, []string{"table", "json", "plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.args[0]+" "+tt.args[1], func(t *testing.T) {
			cmd := NewCmdRoot()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))

			require.NoError(t, cmd.Execute())
			for _, v := range tt.want {
				assert.Contains(t, out.String(), v+"\n")
			}
		})
	}
}
