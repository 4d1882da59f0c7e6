package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ThalusA/PLDGenerator/internal/config"
	"github.com/ThalusA/PLDGenerator/internal/locale"
	"github.com/ThalusA/PLDGenerator/internal/service"
	"github.com/ThalusA/PLDGenerator/internal/tracker"
)

// TrackerFactory opens the tracker a command talks to. The returned function
// releases whatever the tracker holds.
type TrackerFactory func(ctx context.Context, cfg config.Config, observer tracker.Observer) (tracker.Tracker, func() error, error)

// App holds the configuration and collaborators shared by every command.
type App struct {
	Config     config.Config
	Locales    locale.Registry
	NewTracker TrackerFactory

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh form.
	Confirm func(title string) (bool, error)

	verbose bool
	logger  *slog.Logger
}

// NewRootCmd creates the top-level "pld" command and registers all
// subcommands against the provided App. Flags override the configuration
// the App was built with.
func NewRootCmd(app *App) *cobra.Command {
	var token string

	root := &cobra.Command{
		Use:           "pld",
		Short:         "Sync a project log document with GitHub issues",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("token") {
				app.Config.Token = token
			}
			app.Locales = locale.Registry{Dir: app.Config.LocaleDir}
			app.logger = newLogger(cmd.ErrOrStderr(), app.verbose || app.Config.Log)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&token, "token", "t", "", "GitHub access token (default $PLD_GITHUB_TOKEN)")
	flags.StringVarP(&app.Config.Owner, "owner", "o", app.Config.Owner, "Repository owner")
	flags.StringVarP(&app.Config.Repo, "repo", "r", app.Config.Repo, "Repository name")
	flags.Var(&app.Config.Backend, "backend", "Issue tracker backend: github|local")
	flags.StringVar(&app.Config.DBPath, "db", app.Config.DBPath, "Database path for the local backend")
	flags.StringVar(&app.Config.LocaleDir, "locale-dir", app.Config.LocaleDir, "Directory of additional <code>.json locale files")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Log tracker calls and use cases to stderr")

	root.AddCommand(
		newImportCmd(app),
		newExportCmd(app),
		newLabelsCmd(app),
		newTreeCmd(app),
		newValidateCmd(app),
		newStatsCmd(app),
		newRenderCmd(app),
	)

	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// services is what a tracker command works with for one invocation.
type services struct {
	labels  service.LabelService
	imports service.ImportService
	exports service.ExportService
	close   func() error
}

// release closes the tracker and joins any close failure into *err.
func (s *services) release(err *error) {
	if cerr := s.close(); cerr != nil {
		*err = errors.Join(*err, fmt.Errorf("closing tracker: %w", cerr))
	}
}

// openServices validates the tracker settings, opens the tracker and wires
// the services on top of it. Callers must call release.
func (a *App) openServices(cmd *cobra.Command) (*services, error) {
	if err := a.Config.ValidateTracker(); err != nil {
		return nil, err
	}

	var trackerObserver tracker.Observer = tracker.NoopObserver{}
	var observers []service.UseCaseObserver
	if a.verbose || a.Config.Log {
		trackerObserver = tracker.NewLogObserver(cmd.ErrOrStderr())
		observers = append(observers, service.NewLogUseCaseObserver(cmd.ErrOrStderr()))
	}

	factory := a.NewTracker
	if factory == nil {
		factory = OpenTracker
	}
	tr, closeFn, err := factory(cmd.Context(), a.Config, trackerObserver)
	if err != nil {
		return nil, err
	}

	labels := service.NewLabelService(tr, a.logger, observers...)
	return &services{
		labels:  labels,
		imports: service.NewImportService(tr, a.Locales, labels, a.logger, observers...),
		exports: service.NewExportService(tr, a.Locales, a.logger, observers...),
		close:   closeFn,
	}, nil
}
