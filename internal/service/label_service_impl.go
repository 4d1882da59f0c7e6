package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/tracker"
)

// CategoryLabels is the label created for each hierarchy level.
var CategoryLabels = []domain.Label{
	{Name: string(domain.CategoryPLD), Color: "5319e7", Description: "Project log document root"},
	{Name: string(domain.CategoryDeliverable), Color: "0e8a16", Description: "Deliverable of the project log document"},
	{Name: string(domain.CategorySubset), Color: "fbca04", Description: "Subset of a deliverable"},
	{Name: string(domain.CategoryUserStory), Color: "1d76db", Description: "User story of a subset"},
}

type labelService struct {
	tracker  tracker.Tracker
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewLabelService(tr tracker.Tracker, logger *slog.Logger, observers ...UseCaseObserver) LabelService {
	return &labelService{
		tracker:  tr,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Ensure looks every label up concurrently. Any lookup failure falls back to
// creating the label; only a failed creation is an error.
func (s *labelService) Ensure(ctx context.Context) (statuses []LabelStatus, err error) {
	uc := startUseCase(s.observer, "labels.ensure")
	defer uc.finish(ctx, &err)

	statuses = make([]LabelStatus, len(CategoryLabels))
	errs := make([]error, len(CategoryLabels))

	var wg sync.WaitGroup
	for i, want := range CategoryLabels {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses[i], errs[i] = s.ensureOne(ctx, want)
		}()
	}
	wg.Wait()

	if err = errors.Join(errs...); err != nil {
		return nil, err
	}
	created := 0
	for _, st := range statuses {
		if st.Created {
			created++
		}
	}
	uc.set("created", created)
	return statuses, nil
}

func (s *labelService) ensureOne(ctx context.Context, want domain.Label) (LabelStatus, error) {
	got, err := s.tracker.GetLabel(ctx, want.Name)
	if err == nil {
		return LabelStatus{Label: *got}, nil
	}
	if !errors.Is(err, tracker.ErrNotFound) {
		s.logger.WarnContext(ctx, "label lookup failed, creating it", "label", want.Name, "error", err)
	}

	got, err = s.tracker.CreateLabel(ctx, want)
	if err != nil {
		return LabelStatus{}, fmt.Errorf("ensuring label %q: %w", want.Name, err)
	}
	return LabelStatus{Label: *got, Created: true}, nil
}
