package utils

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vit0-9/sheet_url_checker/pkg/utils/table"
)

// Names of the columns added to every processed table.
const (
	ColumnIsExist    = "is_exist"
	ColumnRedirected = "redirected"
)

// DefaultWorkers is the number of URLs checked concurrently per table.
const DefaultWorkers = 8

// URLChecker checks a single cell value.
type URLChecker interface {
	Check(ctx context.Context, value any) CheckResult
}

// Annotator maps a URLChecker over a column on a bounded worker pool.
type Annotator struct {
	checker URLChecker
	workers int
}

// NewAnnotator returns an Annotator running at most workers checks at once.
func NewAnnotator(checker URLChecker, workers int) *Annotator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Annotator{checker: checker, workers: workers}
}

// Annotate checks every value and returns the results in input order.
func (a *Annotator) Annotate(ctx context.Context, values []any) []CheckResult {
	results := make([]CheckResult, len(values))

	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			results[i] = a.checker.Check(ctx, v)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return results
}

// AnnotateTable checks the named column and writes the is_exist and
// redirected columns. Existing columns with those names are overwritten in
// place; otherwise they are appended.
func (a *Annotator) AnnotateTable(ctx context.Context, t *table.Table, column string) error {
	col, ok := t.FindColumn(column)
	if !ok {
		return fmt.Errorf("column %q not found", column)
	}

	results := a.Annotate(ctx, col.Values)

	exists := make([]any, len(results))
	redirected := make([]any, len(results))
	reachable := 0
	for i, r := range results {
		exists[i] = r.IsExist()
		redirected[i] = r.Redirected()
		if r.IsExist() {
			reachable++
		}
	}

	if err := t.SetColumn(ColumnIsExist, exists); err != nil {
		return err
	}
	if err := t.SetColumn(ColumnRedirected, redirected); err != nil {
		return err
	}

	slog.Info("table annotated", "column", col.Name, "rows", len(results), "reachable", reachable)
	return nil
}
