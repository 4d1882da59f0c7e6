package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/cli/formatter"
	"github.com/ThalusA/PLDGenerator/internal/document"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a document against the schema rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := document.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading document: %w", err)
			}

			problems := document.Validate(f, app.Locales.Codes())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(problems))
			if len(problems) > 0 {
				return fmt.Errorf("%s is invalid", args[0])
			}
			return nil
		},
	}
}
