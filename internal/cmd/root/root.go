// Package root provides the root command for the mdalert CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdalert/internal/cmd/completion"
	"github.com/open-cli-collective/mdalert/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/mdalert/internal/cmd/init"
	"github.com/open-cli-collective/mdalert/internal/cmd/render"
	"github.com/open-cli-collective/mdalert/internal/cmd/types"
	"github.com/open-cli-collective/mdalert/internal/version"
	"github.com/open-cli-collective/mdalert/internal/view"
)

// NewCmdRoot creates the root command for mdalert.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdalert",
		Short: "Render markdown alert blocks as styled HTML",
		Long: `mdalert renders markdown to HTML and turns alert blocks such as

  :::warning Back up your data first.

into containers with a type-specific icon and class names.

Get started by running: mdalert init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mdalert/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = cmd.RegisterFlagCompletionFunc("output", completion.Values(view.ValidFormats()...))

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(render.NewCmdCheck())
	cmd.AddCommand(types.NewCmdTypes())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
