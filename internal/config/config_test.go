package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdalert/pkg/alert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "all options",
			config:  Config{Icons: "glyph", OnUnknown: "abort", Marker: "!!!"},
			wantErr: false,
		},
		{
			name:    "alias icon mode",
			config:  Config{Icons: "emoji"},
			wantErr: false,
		},
		{
			name:    "invalid icon mode",
			config:  Config{Icons: "png"},
			wantErr: true,
			errMsg:  "icons",
		},
		{
			name:    "invalid policy",
			config:  Config{OnUnknown: "ignore"},
			wantErr: true,
			errMsg:  "on_unknown",
		},
		{
			name:    "marker with whitespace",
			config:  Config{Marker: ": ::"},
			wantErr: true,
			errMsg:  "must not contain whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_AlertConfig(t *testing.T) {
	cfg := Config{
		Icons:     "emoji",
		OnUnknown: "abort",
		Marker:    "!!!",
		CustomTypes: map[string]CustomType{
			"custom": {Emoji: "💻", SVG: "<svg/>"},
		},
	}

	got, err := cfg.AlertConfig()
	require.NoError(t, err)
	assert.Equal(t, alert.Glyph, got.Icons)
	assert.Equal(t, alert.Abort, got.OnUnknown)
	assert.Equal(t, alert.MarkerMatcher{Marker: "!!!"}, got.Matcher)
	assert.Equal(t, map[string]alert.CustomType{
		"custom": {Glyph: "💻", VectorImage: "<svg/>"},
	}, got.CustomTypes)
}

func TestConfig_AlertConfigDefaults(t *testing.T) {
	got, err := (&Config{}).AlertConfig()
	require.NoError(t, err)
	assert.Equal(t, alert.VectorImage, got.Icons)
	assert.Equal(t, alert.Skip, got.OnUnknown)
	assert.Nil(t, got.Matcher)
	assert.Nil(t, got.CustomTypes)
}

func TestConfig_AlertConfigInvalid(t *testing.T) {
	_, err := (&Config{Icons: "png"}).AlertConfig()
	require.Error(t, err)

	_, err = (&Config{OnUnknown: "maybe"}).AlertConfig()
	require.Error(t, err)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("MDALERT_ICONS", "glyph")
		t.Setenv("MDALERT_ON_UNKNOWN", "abort")
		t.Setenv("MDALERT_MARKER", "!!!")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "glyph", cfg.Icons)
		assert.Equal(t, "abort", cfg.OnUnknown)
		assert.Equal(t, "!!!", cfg.Marker)
	})

	t.Run("empty env vars do not override", func(t *testing.T) {
		t.Setenv("MDALERT_ICONS", "none")
		t.Setenv("MDALERT_ON_UNKNOWN", "")
		t.Setenv("MDALERT_MARKER", "")

		cfg := &Config{Icons: "glyph", OnUnknown: "abort", Marker: "%%"}
		cfg.LoadFromEnv()

		assert.Equal(t, "none", cfg.Icons)
		assert.Equal(t, "abort", cfg.OnUnknown)
		assert.Equal(t, "%%", cfg.Marker)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "mdalert", "config.yml"), DefaultConfigPath())
	})

	t.Run("home directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "mdalert", "config.yml"), DefaultConfigPath())
	})
}

func sampleConfig() Config {
	return Config{
		Icons:     "glyph",
		OnUnknown: "abort",
		Marker:    "!!!",
		Document:  true,
		CustomTypes: map[string]CustomType{
			"custom": {Emoji: "💻", SVG: `<svg xmlns="http://www.w3.org/2000/svg"></svg>`},
			"note":   {Emoji: "📝"},
		},
	}
}

func TestConfig_Save_and_Load(t *testing.T) {
	for _, name := range []string{"config.yml", "config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "nested", name)
			original := sampleConfig()

			require.NoError(t, original.Save(configPath))

			loaded, err := Load(configPath)
			require.NoError(t, err)
			assert.Equal(t, original, *loaded)
		})
	}
}

func TestLoad_YAMLKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	data := `icons: emoji
custom_types:
  custom:
    emoji: "💻"
    svg: '<svg viewBox="0 0 16 16"></svg>'
`
	require.NoError(t, os.WriteFile(configPath, []byte(data), 0600))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "emoji", cfg.Icons)
	assert.Equal(t, CustomType{Emoji: "💻", SVG: `<svg viewBox="0 0 16 16"></svg>`}, cfg.CustomTypes["custom"])
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("icons: [unclosed"), 0600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file starts empty", func(t *testing.T) {
		t.Setenv("MDALERT_ICONS", "none")
		t.Setenv("MDALERT_ON_UNKNOWN", "")
		t.Setenv("MDALERT_MARKER", "")

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, &Config{Icons: "none"}, cfg)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("MDALERT_ICONS", "vector-image")
		t.Setenv("MDALERT_ON_UNKNOWN", "")
		t.Setenv("MDALERT_MARKER", "")

		configPath := filepath.Join(t.TempDir(), "config.yml")
		original := sampleConfig()
		require.NoError(t, original.Save(configPath))

		cfg, err := LoadWithEnv(configPath)
		require.NoError(t, err)
		assert.Equal(t, "vector-image", cfg.Icons)
		assert.Equal(t, "abort", cfg.OnUnknown)
		assert.Len(t, cfg.CustomTypes, 2)
	})

	t.Run("parse errors are returned", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("icons: [unclosed"), 0600))

		_, err := LoadWithEnv(configPath)
		require.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	t.Setenv("MDALERT_ICONS", "")
	t.Setenv("MDALERT_ON_UNKNOWN", "")
	t.Setenv("MDALERT_MARKER", "")

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mdalert.toml")
		require.NoError(t, (&Config{Icons: "glyph"}).Save(path))

		cfg, err := Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, "glyph", cfg.Icons)
	})

	t.Run("default path missing", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("icons: bitmap\n"), 0644))

		_, err := Resolve(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
		assert.Contains(t, err.Error(), "icons")
	})
}
