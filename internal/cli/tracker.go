package cli

import (
	"context"
	"fmt"

	"github.com/ThalusA/PLDGenerator/internal/config"
	"github.com/ThalusA/PLDGenerator/internal/db"
	"github.com/ThalusA/PLDGenerator/internal/tracker"
)

// OpenTracker builds the tracker selected by cfg.Backend.
func OpenTracker(ctx context.Context, cfg config.Config, observer tracker.Observer) (tracker.Tracker, func() error, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		local, err := tracker.NewLocal(ctx, database, db.NewSQLiteUnitOfWork(database), cfg.Owner, cfg.Repo, cfg.PageSize, observer)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		return local, database.Close, nil
	default:
		gh := tracker.NewGitHub(tracker.GitHubConfig{
			BaseURL:  cfg.APIURL,
			Token:    cfg.Token,
			Owner:    cfg.Owner,
			Repo:     cfg.Repo,
			PageSize: cfg.PageSize,
			Timeout:  cfg.Timeout(),
		}, observer)
		return gh, func() error { return nil }, nil
	}
}
