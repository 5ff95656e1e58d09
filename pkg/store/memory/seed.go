package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pharmos/gateway/pkg/store"
	"golang.org/x/sync/errgroup"
)

// LoadDir seeds the stores from JSON files in dir. Each entity type reads
// its own file (users.json, molecules.json, ...) holding an array of
// records; absent files are skipped. Files load concurrently.
func LoadDir(ctx context.Context, dir string, stores *store.Stores) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "users.json"), stores.Users) })
	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "molecules.json"), stores.Molecules) })
	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "projects.json"), stores.Projects) })
	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "clinical_trials.json"), stores.Trials) })
	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "research_papers.json"), stores.Papers) })
	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "safety_events.json"), stores.SafetyEvents) })
	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "predictions.json"), stores.Predictions) })
	g.Go(func() error { return loadFile(ctx, filepath.Join(dir, "insights.json"), stores.Insights) })

	return g.Wait()
}

func loadFile[T store.Record[T]](ctx context.Context, path string, repo store.Repository[T]) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	for _, rec := range records {
		if _, err := repo.Create(ctx, rec); err != nil {
			return fmt.Errorf("seeding from %s: %w", path, err)
		}
	}
	return nil
}
