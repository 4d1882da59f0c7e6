package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThalusA/PLDGenerator/internal/codec"
	"github.com/ThalusA/PLDGenerator/internal/document"
	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
	"github.com/ThalusA/PLDGenerator/internal/tracker"
	"github.com/ThalusA/PLDGenerator/internal/tree"
)

type exportService struct {
	tracker  tracker.Tracker
	locales  locale.Registry
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewExportService(tr tracker.Tracker, locales locale.Registry, logger *slog.Logger, observers ...UseCaseObserver) ExportService {
	return &exportService{
		tracker:  tr,
		locales:  locales,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) Fetch(ctx context.Context) (*tree.Tree, error) {
	return tree.Build(s.tracker.Issues(ctx))
}

// Export rebuilds the document from every issue. The whole listing is read
// before anything is parsed, since the root may arrive on any page.
func (s *exportService) Export(ctx context.Context, opts ExportOptions) (result *ExportResult, err error) {
	uc := startUseCase(s.observer, "export")
	defer uc.finish(ctx, &err)

	var t *tree.Tree
	if t, err = s.Fetch(ctx); err != nil {
		return nil, err
	}
	if err = t.Err(); err != nil {
		return nil, err
	}

	var c *codec.Codec
	if c, err = s.codecFor(t.Root.Issue, opts.Locale); err != nil {
		return nil, err
	}
	uc.set("locale", c.Dictionary().Code)

	x := &exporter{codec: c, logger: s.logger, ctx: ctx}
	c.Warn = func(w codec.Warning) {
		x.warn("issue #%d (%s): %s", w.Issue.Number, w.Issue.URL, w.Message)
	}
	for _, issue := range t.Skipped {
		s.logger.WarnContext(ctx, "skipping issue without a single category label", "issue", issue.Number, "url", issue.URL)
	}
	for _, issue := range t.Duplicates {
		x.warn("issue #%d (%s) repeats the coordinate of a lower-numbered issue, skipped", issue.Number, issue.URL)
	}

	var p *domain.PLD
	if p, err = x.pld(t.Root); err != nil {
		return nil, err
	}
	uc.set("issues", x.parsed)
	uc.set("warnings", len(x.warnings))

	return &ExportResult{Document: document.New(p), Tree: t, Warnings: x.warnings}, nil
}

func (s *exportService) codecFor(root *domain.Issue, code string) (*codec.Codec, error) {
	if code == "" {
		return codec.Detect(s.locales, root)
	}
	dict, err := s.locales.Load(code)
	if err != nil {
		return nil, err
	}
	return codec.New(dict)
}

// exporter walks the tree turning issues back into entities.
type exporter struct {
	ctx      context.Context
	codec    *codec.Codec
	logger   *slog.Logger
	warnings []string
	parsed   int
}

func (x *exporter) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	x.logger.WarnContext(x.ctx, msg)
	x.warnings = append(x.warnings, msg)
}

func (x *exporter) placeholder(kind domain.Category, coord domain.Coordinate) {
	x.warn("no %s issue at %s, exported as an unnamed placeholder", kind, coord)
}

func (x *exporter) pld(root *tree.Node) (*domain.PLD, error) {
	p, err := x.codec.ParsePLD(root.Issue)
	if err != nil {
		return nil, err
	}
	x.parsed++
	for _, i := range root.Indices() {
		d, err := x.deliverable(domain.Coordinate{i}, root.Child(i))
		if err != nil {
			return nil, err
		}
		p.Deliverables = append(p.Deliverables, *d)
	}
	return p, nil
}

func (x *exporter) deliverable(coord domain.Coordinate, n *tree.Node) (*domain.Deliverable, error) {
	d := &domain.Deliverable{}
	if n.Issue == nil {
		x.placeholder(domain.CategoryDeliverable, coord)
	} else {
		var err error
		if d, err = x.codec.ParseDeliverable(n.Issue); err != nil {
			return nil, err
		}
		x.parsed++
	}
	for _, i := range n.Indices() {
		s, err := x.subset(coord.Child(i), n.Child(i))
		if err != nil {
			return nil, err
		}
		d.Subsets = append(d.Subsets, *s)
	}
	return d, nil
}

func (x *exporter) subset(coord domain.Coordinate, n *tree.Node) (*domain.Subset, error) {
	s := &domain.Subset{}
	if n.Issue == nil {
		x.placeholder(domain.CategorySubset, coord)
	} else {
		var err error
		if s, err = x.codec.ParseSubset(n.Issue); err != nil {
			return nil, err
		}
		x.parsed++
	}
	for _, i := range n.Indices() {
		child := n.Child(i)
		if child.Issue == nil {
			continue
		}
		u, err := x.codec.ParseUserStory(child.Issue)
		if err != nil {
			return nil, err
		}
		x.parsed++
		s.UserStories = append(s.UserStories, *u)
	}
	return s, nil
}
