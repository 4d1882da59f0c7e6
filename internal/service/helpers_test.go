package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/codec"
	"github.com/ThalusA/PLDGenerator/internal/document"
	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
	"github.com/ThalusA/PLDGenerator/internal/tracker/trackertest"
)

type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingUseCaseObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type services struct {
	fake     *trackertest.FakeTracker
	labels   LabelService
	importer ImportService
	exporter ExportService
	observer *recordingUseCaseObserver
}

// newServices wires every service over a fake tracker that lists issues
// three per page in a seeded random order.
func newServices(t *testing.T) *services {
	t.Helper()
	fake := trackertest.New()
	fake.PageSize = 3
	fake.Shuffle = rand.New(rand.NewPCG(1, 2))

	obs := &recordingUseCaseObserver{}
	labels := NewLabelService(fake, nil, obs)
	return &services{
		fake:     fake,
		labels:   labels,
		importer: NewImportService(fake, locale.Registry{}, labels, nil, obs),
		exporter: NewExportService(fake, locale.Registry{}, nil, obs),
		observer: obs,
	}
}

func newCodec(t *testing.T, code string) *codec.Codec {
	t.Helper()
	dict, err := locale.Load(code)
	require.NoError(t, err)
	c, err := codec.New(dict)
	require.NoError(t, err)
	return c
}

func importPLD(t *testing.T, s *services, p *domain.PLD) *ImportResult {
	t.Helper()
	res, err := s.importer.Import(context.Background(), document.New(p))
	require.NoError(t, err)
	return res
}

func mustIssue(t *testing.T, fake *trackertest.FakeTracker, title string) domain.Issue {
	t.Helper()
	issue, ok := fake.ByTitle(title)
	require.True(t, ok, "no issue titled %q", title)
	return issue
}


func replaceOnce(t *testing.T, s, old, new string) string {
	t.Helper()
	require.Equal(t, 1, strings.Count(s, old), "expected exactly one %q", old)
	return strings.Replace(s, old, new, 1)
}
