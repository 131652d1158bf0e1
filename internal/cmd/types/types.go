// Package types provides the types command.
package types

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdalert/internal/config"
	"github.com/open-cli-collective/mdalert/internal/view"
	"github.com/open-cli-collective/mdalert/pkg/alert"
)

type typesOptions struct {
	configPath string
	output     string
	noColor    bool
	stdout     io.Writer
}

// NewCmdTypes creates the types command.
func NewCmdTypes() *cobra.Command {
	opts := &typesOptions{}

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List available alert types",
		Long: `List the built-in alert types merged with custom types from the configuration.

The SOURCE column shows whether a type is built in, defined in the
configuration, or a built-in type with configured overrides.`,
		Example: `  # List types
  mdalert types

  # As JSON
  mdalert types -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runTypes(opts)
		},
	}

	return cmd
}

func runTypes(opts *typesOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	alertCfg, err := cfg.AlertConfig()
	if err != nil {
		return err
	}

	reg, err := alert.NewRegistry(alertCfg.CustomTypes)
	if err != nil {
		return fmt.Errorf("invalid custom types: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	renderer.RenderTypes(reg)
	return nil
}
