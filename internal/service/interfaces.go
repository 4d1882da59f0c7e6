package service

import (
	"context"

	"github.com/ThalusA/PLDGenerator/internal/document"
	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/tree"
)

// LabelStatus reports one category label after bootstrap.
type LabelStatus struct {
	Label   domain.Label
	Created bool
}

type LabelService interface {
	// Ensure makes sure every category label exists, creating missing ones.
	Ensure(ctx context.Context) ([]LabelStatus, error)
}

// ImportResult holds the outcome of pushing a document to the tracker.
type ImportResult struct {
	Root      *domain.Issue
	Created   int
	Updated   int
	Unchanged int
	Labels    []LabelStatus
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	Import(ctx context.Context, f *document.File) (*ImportResult, error)
}

// ExportOptions tunes an export. An empty Locale means the locale is
// discovered from the root issue.
type ExportOptions struct {
	Locale string
}

// ExportResult is the reconstructed document together with the tree it was
// read from and the oddities met on the way.
type ExportResult struct {
	Document *document.File
	Tree     *tree.Tree
	Warnings []string
}

type ExportService interface {
	Export(ctx context.Context, opts ExportOptions) (*ExportResult, error)
	// Fetch lists every issue into a tree without parsing bodies.
	Fetch(ctx context.Context) (*tree.Tree, error)
}
