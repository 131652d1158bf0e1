// Package render provides the render and check commands.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/mdalert/internal/cmd/completion"
	"github.com/open-cli-collective/mdalert/internal/config"
	"github.com/open-cli-collective/mdalert/internal/logging"
	htmlrender "github.com/open-cli-collective/mdalert/internal/render"
	"github.com/open-cli-collective/mdalert/internal/view"
	"github.com/open-cli-collective/mdalert/pkg/alert"
)

type renderOptions struct {
	configPath string
	out        string
	icons      string
	onUnknown  string
	marker     string
	document   bool
	title      string
	watch      bool
	noColor    bool
	verbose    bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown to HTML",
		Long: `Render a markdown file to HTML, turning alert blocks into styled containers.

An alert block is a paragraph or blockquote that starts with the alert
marker followed by a type name:

  :::warning Back up your data first.

The block may be closed by a last line holding only the marker:

  :::note
  Body text.
  :::

Inside a blockquote the alert takes every paragraph of the quote; at top
level it covers the one paragraph that starts with the marker.

Reads from stdin when no file is given.`,
		Example: `  # Render to stdout
  mdalert render README.md

  # Write a standalone page with emoji icons
  mdalert render README.md --document --icons glyph --out README.html

  # Re-render on every save
  mdalert render notes.md --out notes.html --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()

			var file string
			if len(args) > 0 {
				file = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRender(ctx, file, opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write HTML to this file instead of stdout")
	cmd.Flags().StringVar(&opts.icons, "icons", "", "Icon mode: vector-image, glyph, none")
	cmd.Flags().StringVar(&opts.onUnknown, "on-unknown", "", "Unknown alert type policy: skip, abort")
	cmd.Flags().StringVar(&opts.marker, "marker", "", "Alert trigger marker (default \":::\")")
	cmd.Flags().BoolVar(&opts.document, "document", false, "Wrap output in a complete HTML page")
	cmd.Flags().StringVar(&opts.title, "title", "", "Page title for --document (default: front matter title)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-render whenever the file changes")
	registerValueCompletions(cmd)

	return cmd
}

func registerValueCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("icons", completion.Values(alert.VectorImage.String(), alert.Glyph.String(), alert.NoIcon.String()))
	if cmd.Flags().Lookup("on-unknown") != nil {
		_ = cmd.RegisterFlagCompletionFunc("on-unknown", completion.Values(config.UnknownPolicies...))
	}
}

func runRender(ctx context.Context, file string, opts *renderOptions) error {
	if opts.watch && file == "" {
		return fmt.Errorf("--watch requires a file argument")
	}
	if opts.watch && opts.out == "" {
		return fmt.Errorf("--watch requires --out")
	}

	renderOpts, err := loadOptions(opts)
	if err != nil {
		return err
	}

	renderer := newRenderer(opts)

	if err := renderFile(file, renderOpts, opts, renderer); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	renderer.Success(fmt.Sprintf("Watching %s (Ctrl+C to stop)", file))
	return watchFile(ctx, file, opts.logger, func() {
		if err := renderFile(file, renderOpts, opts, renderer); err != nil {
			renderer.Error(err.Error())
		}
	})
}

// loadOptions merges the config file, environment and command flags.
// Flags win over environment, which wins over the file.
func loadOptions(opts *renderOptions) (htmlrender.Options, error) {
	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return htmlrender.Options{}, fmt.Errorf("failed to load config: %w (run 'mdalert init' to configure)", err)
	}

	if opts.icons != "" {
		cfg.Icons = opts.icons
	}
	if opts.onUnknown != "" {
		cfg.OnUnknown = opts.onUnknown
	}
	if opts.marker != "" {
		cfg.Marker = opts.marker
	}
	if err := cfg.Validate(); err != nil {
		return htmlrender.Options{}, fmt.Errorf("invalid options: %w", err)
	}

	alertCfg, err := cfg.AlertConfig()
	if err != nil {
		return htmlrender.Options{}, err
	}

	if opts.logger == nil {
		opts.logger, err = logging.New(opts.verbose)
		if err != nil {
			return htmlrender.Options{}, fmt.Errorf("failed to create logger: %w", err)
		}
	}
	alertCfg.Logger = opts.logger

	return htmlrender.Options{
		Alert:    alertCfg,
		Document: opts.document || cfg.Document,
		Title:    opts.title,
	}, nil
}

func newRenderer(opts *renderOptions) *view.Renderer {
	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	if opts.stderr != nil {
		renderer.SetErrWriter(opts.stderr)
	}
	return renderer
}

func readSource(file string, stdin io.Reader) ([]byte, error) {
	if file == "" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func renderFile(file string, renderOpts htmlrender.Options, opts *renderOptions, renderer *view.Renderer) error {
	source, err := readSource(file, opts.stdin)
	if err != nil {
		return err
	}

	result, err := htmlrender.Render(source, renderOpts)
	if err != nil {
		if file != "" {
			return fmt.Errorf("%s: %w", file, err)
		}
		return err
	}
	renderer.RenderReport(file, result.Report)

	if opts.out == "" {
		w := opts.stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(result.HTML)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(opts.out, result.HTML, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	renderer.Success(fmt.Sprintf("Rendered %s (%d alert blocks)", opts.out, rewritten(result)))
	return nil
}

func rewritten(result *htmlrender.Result) int {
	if result.Report == nil {
		return 0
	}
	return result.Report.Rewritten
}
