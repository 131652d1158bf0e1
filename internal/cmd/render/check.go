package render

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdalert/internal/golden"
	htmlrender "github.com/open-cli-collective/mdalert/internal/render"
)

// ErrMismatch is returned by check when the output differs from the reference.
var ErrMismatch = errors.New("output does not match reference")

type checkOptions struct {
	renderOptions
	golden string
	update bool
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Compare rendered HTML with a reference file",
		Long: `Render a markdown file and compare the result with a reference HTML file.

Differences are printed line by line: "+ |" marks lines only in the new
output, "- |" lines only in the reference. The command fails when the two
differ. Use --update to accept the new output as the reference.`,
		Example: `  # Compare with a reference
  mdalert check docs/alerts.md --golden testdata/alerts.html

  # Accept the current output
  mdalert check docs/alerts.md --golden testdata/alerts.html --update`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runCheck(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.golden, "golden", "g", "", "Reference HTML file (required)")
	cmd.Flags().BoolVarP(&opts.update, "update", "u", false, "Write the rendered output to the reference file")
	cmd.Flags().StringVar(&opts.icons, "icons", "", "Icon mode: vector-image, glyph, none")
	cmd.Flags().StringVar(&opts.marker, "marker", "", "Alert trigger marker (default \":::\")")
	cmd.Flags().BoolVar(&opts.document, "document", false, "Wrap output in a complete HTML page")
	cmd.Flags().StringVar(&opts.title, "title", "", "Page title for --document")
	_ = cmd.MarkFlagRequired("golden")
	registerValueCompletions(cmd)

	return cmd
}

func runCheck(_ context.Context, file string, opts *checkOptions) error {
	if opts.golden == "" {
		return fmt.Errorf("--golden is required")
	}

	renderOpts, err := loadOptions(&opts.renderOptions)
	if err != nil {
		return err
	}
	renderer := newRenderer(&opts.renderOptions)

	source, err := readSource(file, nil)
	if err != nil {
		return err
	}
	result, err := htmlrender.Render(source, renderOpts)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	renderer.RenderReport(file, result.Report)

	diff, err := golden.Check(opts.golden, result.HTML, opts.update)
	if err != nil {
		return err
	}
	if opts.update {
		renderer.Success(fmt.Sprintf("Updated %s", opts.golden))
		return nil
	}
	if diff.Equal() {
		renderer.Success(fmt.Sprintf("%s matches %s", file, opts.golden))
		return nil
	}

	w := opts.stdout
	if w == nil {
		w = os.Stdout
	}
	if _, err := diff.WriteTo(w); err != nil {
		return err
	}
	added, removed := diff.Changed()
	renderer.Error(fmt.Sprintf("%s differs from %s (+%d -%d lines)", file, opts.golden, added, removed))
	return ErrMismatch
}
