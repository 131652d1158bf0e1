// Package init provides the init command for mdalert.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdalert/internal/cmd/completion"
	"github.com/open-cli-collective/mdalert/internal/config"
	"github.com/open-cli-collective/mdalert/pkg/alert"
)

type initOptions struct {
	configPath  string
	icons       string
	onUnknown   string
	marker      string
	document    bool
	force       bool
	interactive bool

	stdout io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}
	var noInput bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mdalert configuration",
		Long: `Initialize mdalert with your preferred rendering defaults.

This command will guide you through choosing the icon mode, the unknown
type policy and the alert marker. The configuration will be saved to
~/.config/mdalert/config.yml.

Custom alert types can be added to the file afterwards:

  custom_types:
    deprecated:
      emoji: "🗑️"
      svg: '<svg xmlns="http://www.w3.org/2000/svg" ...></svg>'`,
		Example: `  # Interactive setup
  mdalert init

  # Non-interactive
  mdalert init --no-input --icons glyph --on-unknown abort`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.interactive = !noInput
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.icons, "icons", alert.VectorImage.String(), "Icon mode: vector-image, glyph, none")
	cmd.Flags().StringVar(&opts.onUnknown, "on-unknown", alert.Skip.String(), "Unknown alert type policy: skip, abort")
	cmd.Flags().StringVar(&opts.marker, "marker", alert.DefaultMarker, "Alert trigger marker")
	cmd.Flags().BoolVar(&opts.document, "document", false, "Render complete HTML pages by default")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing configuration without asking")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Do not prompt; use flag values")
	_ = cmd.RegisterFlagCompletionFunc("icons", completion.Values(alert.VectorImage.String(), alert.Glyph.String(), alert.NoIcon.String()))
	_ = cmd.RegisterFlagCompletionFunc("on-unknown", completion.Values(config.UnknownPolicies...))

	return cmd
}

func runInit(opts *initOptions) error {
	out := opts.stdout
	if out == nil {
		out = os.Stdout
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if !opts.interactive {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			_, _ = fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		Icons:     opts.icons,
		OnUnknown: opts.onUnknown,
		Marker:    opts.marker,
		Document:  opts.document,
	}

	if opts.interactive {
		if err := newForm(cfg).Run(); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	_, _ = fmt.Fprintln(out, "\nYou're all set! Try running:")
	_, _ = fmt.Fprintln(out, "  mdalert types")
	_, _ = fmt.Fprintln(out, "  mdalert render README.md")

	return nil
}

func newForm(cfg *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Icon mode").
				Description("How alert icons are rendered").
				Options(
					huh.NewOption("Inline SVG", alert.VectorImage.String()),
					huh.NewOption("Emoji glyph", alert.Glyph.String()),
					huh.NewOption("No icon", alert.NoIcon.String()),
				).
				Value(&cfg.Icons),

			huh.NewSelect[string]().
				Title("Unknown alert types").
				Description("What to do with a block naming a type that is not defined").
				Options(
					huh.NewOption("Leave the block unchanged and warn", alert.Skip.String()),
					huh.NewOption("Fail the render", alert.Abort.String()),
				).
				Value(&cfg.OnUnknown),

			huh.NewInput().
				Title("Alert marker").
				Description("Text that starts an alert block, as in :::note").
				Placeholder(alert.DefaultMarker).
				Value(&cfg.Marker).
				Validate(validateMarker),

			huh.NewConfirm().
				Title("Render complete HTML pages by default?").
				Value(&cfg.Document),
		),
	)
}

func validateMarker(s string) error {
	if s == "" {
		return fmt.Errorf("marker is required")
	}
	return (&config.Config{Marker: s}).Validate()
}
