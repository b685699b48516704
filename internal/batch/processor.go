// Package batch renders many scenes concurrently and records the outcome of
// each in a manifest.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"graphite-raster/internal/logging"
	"graphite-raster/internal/output"
	"graphite-raster/internal/postprocess"
	"graphite-raster/internal/render"
	"graphite-raster/internal/scene"
	"graphite-raster/internal/texture"
)

// progressInterval is how often Run logs progress.
const progressInterval = 2 * time.Second

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Format    output.Format
	Scale     int
	Thumbnail int
	Textures  texture.Resolver
	Workers   int
}

// ErrDuplicateName fails a job whose output name an earlier job in the same
// run already uses.
var ErrDuplicateName = errors.New("batch: duplicate output name")

// Job is one scene to render: either an in-memory Scene or a file at Path.
// Name is the stem of the output files.
type Job struct {
	Name  string
	Path  string
	Scene *scene.Scene
}

// outputName is the file stem the job writes. It falls back to the scene
// name, then the scene file stem, when Name is empty.
func (j Job) outputName() string {
	switch {
	case j.Name != "":
		return j.Name
	case j.Scene != nil:
		return j.Scene.Name
	default:
		return strings.TrimSuffix(filepath.Base(j.Path), filepath.Ext(j.Path))
	}
}

// duplicates flags every job whose output name, ignoring case, was already
// taken by an earlier job.
func duplicates(jobs []Job) []bool {
	seen := make(map[string]bool, len(jobs))
	dup := make([]bool, len(jobs))
	for i, j := range jobs {
		key := strings.ToLower(j.outputName())
		dup[i] = seen[key]
		seen[key] = true
	}
	return dup
}

// Result holds the outcome of processing one job.
type Result struct {
	Name      string
	Image     string // relative to Config.OutputDir
	Thumbnail string
	Width     int
	Height    int
	Stats     render.Stats
	Success   bool
	Error     string
}

// Run processes all jobs using a worker pool and returns one Result per job,
// in job order. Each worker owns the rasterizer of the job it is running.
// Jobs not yet started when ctx is cancelled fail with the context error, and
// a job reusing an earlier job's output name fails with ErrDuplicateName.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	workers := max(cfg.Workers, 1)
	total := len(jobs)
	results := make([]Result, total)
	dup := duplicates(jobs)
	var processed, failed atomic.Int64

	log := logging.Logger()
	log.Info("batch: start", "jobs", total, "workers", workers, "output", cfg.OutputDir)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("batch: progress", "done", p, "total", total, "per_sec", rate)
				}
			}
		}
	}()

	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				var res Result
				if err := ctx.Err(); err != nil {
					res = Result{Name: jobs[idx].Name, Error: err.Error()}
				} else if dup[idx] {
					res = Result{Name: jobs[idx].Name,
						Error: fmt.Sprintf("%v: %s", ErrDuplicateName, jobs[idx].outputName())}
				} else {
					res = processJob(cfg, jobs[idx])
				}
				if !res.Success {
					failed.Add(1)
					log.Warn("batch: job failed", "name", res.Name, "err", res.Error)
				}
				results[idx] = res
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	log.Info("batch: finished", "ok", int64(total)-failed.Load(), "failed", failed.Load(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

func processJob(cfg Config, job Job) Result {
	res := Result{Name: job.Name}

	sc := job.Scene
	if sc == nil {
		var err error
		if sc, err = scene.Load(job.Path); err != nil {
			res.Error = err.Error()
			return res
		}
	}
	res.Name = sc.Name

	fb, stats, err := render.Frame(sc, cfg.Textures)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Stats = stats

	img := postprocess.Scale(fb.NRGBA(), cfg.Scale)
	res.Width, res.Height = img.Bounds().Dx(), img.Bounds().Dy()

	name := job.outputName()
	res.Image = name + cfg.Format.Ext()
	if err := output.WriteFile(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Thumbnail > 0 {
		res.Thumbnail = fmt.Sprintf("%s_thumb%s", name, cfg.Format.Ext())
		thumb := postprocess.Thumbnail(img, cfg.Thumbnail)
		if err := output.WriteFile(filepath.Join(cfg.OutputDir, res.Thumbnail), thumb); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	logging.Logger().Debug("batch: rendered", "name", sc.Name,
		"triangles", stats.Triangles, "pixels", stats.Pixels)
	res.Success = true
	return res
}
