package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdalert/internal/config"
	"github.com/open-cli-collective/mdalert/pkg/alert"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current mdalert configuration with value source indicators.`,
		Example: `  # Show current config
  mdalert config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(configPath(path), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(path string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(path)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, def, envVar string) {
		_, _ = bold.Fprintf(w, "%-14s", label+":")
		if value == "" {
			_, _ = fmt.Fprint(w, def)
			_, _ = dim.Fprintln(w, "  (default)")
			return
		}

		_, _ = fmt.Fprint(w, value)

		source := "config"
		if v := os.Getenv(envVar); v != "" && v == value {
			source = envVar
		} else if fileValue != value {
			source = "-"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Icons", cfg.Icons, fileCfg.Icons, alert.VectorImage.String(), "MDALERT_ICONS")
	printField("On unknown", cfg.OnUnknown, fileCfg.OnUnknown, alert.Skip.String(), "MDALERT_ON_UNKNOWN")
	printField("Marker", cfg.Marker, fileCfg.Marker, alert.DefaultMarker, "MDALERT_MARKER")
	_, _ = bold.Fprintf(w, "%-14s", "Document:")
	_, _ = fmt.Fprintln(w, cfg.Document)

	_, _ = bold.Fprintf(w, "%-14s", "Custom types:")
	if len(cfg.CustomTypes) == 0 {
		_, _ = dim.Fprintln(w, "-")
	} else {
		reg, err := alert.NewRegistry(alertTypes(cfg))
		if err != nil {
			_, _ = color.New(color.FgRed).Fprintln(w, "invalid")
			_, _ = fmt.Fprintln(w, err)
		} else {
			_, _ = fmt.Fprintln(w)
			for _, name := range reg.Names() {
				if src, _ := reg.Source(name); src != alert.SourceBuiltin {
					def, _ := reg.Resolve(name)
					_, _ = fmt.Fprintf(w, "  %s %s", def.Glyph, name)
					_, _ = dim.Fprintf(w, "  (%s)\n", src)
				}
			}
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", path)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

func alertTypes(cfg *config.Config) map[string]alert.CustomType {
	types := make(map[string]alert.CustomType, len(cfg.CustomTypes))
	for name, ct := range cfg.CustomTypes {
		types[name] = alert.CustomType{Glyph: ct.Emoji, VectorImage: ct.SVG}
	}
	return types
}
