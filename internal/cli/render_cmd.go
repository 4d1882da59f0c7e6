package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/cli/formatter"
	"github.com/ThalusA/PLDGenerator/internal/document"
	"github.com/ThalusA/PLDGenerator/internal/latex"
)

func newRenderCmd(app *App) *cobra.Command {
	var out string
	var opts latex.Options

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Generate the printable LaTeX source of a document",
		Long: "Generate the LaTeX source of the document in FILE: title page, table of\n" +
			"contents, organigram, deliverable map, user story cards and advancement\n" +
			"report. The output defaults to FILE with a .tex extension.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := document.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading document: %w", err)
			}
			dict, err := app.Locales.Load(f.Locale)
			if err != nil {
				return err
			}

			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".tex"
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating %s: %w", dir, err)
				}
			}
			src := latex.Render(dict, &f.PLD, opts)
			if err := atomic.WriteFile(out, strings.NewReader(src)); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			app.logger.InfoContext(cmd.Context(), "rendered document", "path", out, "bytes", len(src))
			fmt.Fprintf(cmd.OutOrStdout(), "%s Rendered %q to %s\n",
				formatter.StyleGreen.Render("✔"), f.Title, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "O", "", "LaTeX file to write (default FILE with .tex extension)")
	cmd.Flags().StringVar(&opts.Logo, "logo", "", "Image shown on the title page and in the page header")
	cmd.Flags().StringVar(&opts.Footer, "footer-logo", "", "Image shown in the page footer")

	return cmd
}
