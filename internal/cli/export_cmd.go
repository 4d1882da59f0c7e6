package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/cli/formatter"
	"github.com/ThalusA/PLDGenerator/internal/document"
	"github.com/ThalusA/PLDGenerator/internal/service"
)

func newExportCmd(app *App) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Rebuild a document from the tracker issues",
		Long: "Rebuild a document from the tracker issues and write it to FILE.\n" +
			"A .yaml or .yml extension selects YAML, anything else JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			svc, err := app.openServices(cmd)
			if err != nil {
				return err
			}
			defer svc.release(&err)

			result, err := svc.exports.Export(cmd.Context(), service.ExportOptions{Locale: code})
			if err != nil {
				return err
			}
			if err := document.Save(args[0], result.Document); err != nil {
				return fmt.Errorf("saving document: %w", err)
			}

			fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatWarnings(result.Warnings))
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %q (%s) to %s\n",
				formatter.StyleGreen.Render("✔"), result.Document.Title, result.Document.Locale, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&code, "locale", "l", "", "Locale the issues were rendered with (default: detected)")

	return cmd
}
