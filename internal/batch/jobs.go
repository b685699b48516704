package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"graphite-raster/internal/scene"
)

// Discover returns a job for every .json file directly inside dir, sorted by
// file name. The scene files are loaded later, by the worker.
func Discover(dir string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	var jobs []Job
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		jobs = append(jobs, Job{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	slices.SortFunc(jobs, func(a, b Job) int { return strings.Compare(a.Path, b.Path) })
	return jobs, nil
}

// Builtins returns jobs for the named built-in scenes. The single name "all"
// selects every one.
func Builtins(names []string) ([]Job, error) {
	if len(names) == 1 && names[0] == "all" {
		names = scene.BuiltinNames()
	}
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sc := scene.Builtin(name)
		if sc == nil {
			return nil, fmt.Errorf("batch: unknown built-in scene %q (have %s)",
				name, strings.Join(scene.BuiltinNames(), ", "))
		}
		jobs = append(jobs, Job{Name: name, Scene: sc})
	}
	return jobs, nil
}
