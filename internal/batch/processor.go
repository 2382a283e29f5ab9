package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"vtk-polydata/internal/mathutil"
	"vtk-polydata/internal/meshio"
	"vtk-polydata/internal/preview"
	"vtk-polydata/internal/report"
	"vtk-polydata/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	InputDir    string
	OutputDir   string
	Store       scene.Store
	Reporter    report.Reporter
	Orientation mathutil.Orientation
	ColorLayer  string
	Preview     string // image extension without dot, "" for no preview
	Render      preview.Settings
	Workers     int
	Progress    bool // print a rate line every two seconds
}

// Result holds the outcome of processing one file.
type Result struct {
	File     string // path relative to InputDir
	Mesh     string
	Vertices int
	Faces    int
	Output   string
	Preview  string
	Partial  string // partial-import reason, if any
	Success  bool
	Error    string
}

// Collect lists the .vtk files under dir, relative to it, in sorted order.
func Collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".vtk") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes all files using a worker pool. Results keep the order of files.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if p := processed.Load(); p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	// Worker pool
	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, rel string) Result {
	res := Result{File: rel}
	rep := cfg.Reporter
	if rep == nil {
		rep = report.Discard
	}

	imp, err := meshio.Import(filepath.Join(cfg.InputDir, rel), cfg.Store, rep, meshio.ImportOptions{
		Orientation: cfg.Orientation,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	m := imp.Mesh
	res.Mesh = m.Name
	res.Vertices = len(m.Verts)
	res.Faces = len(m.Polys)
	if imp.Warning != nil {
		res.Partial = imp.Warning.Reason
	}

	res.Output = filepath.Join(cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	_, err = meshio.Export(res.Output, m, rep, meshio.ExportOptions{
		Orientation: cfg.Orientation,
		ColorLayer:  cfg.ColorLayer,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Preview != "" {
		settings := cfg.Render
		if settings.ColorLayer == "" {
			settings.ColorLayer = cfg.ColorLayer
		}
		img := preview.Render(m, settings)
		res.Preview = strings.TrimSuffix(res.Output, filepath.Ext(res.Output)) + "." + cfg.Preview
		if err := preview.Save(res.Preview, img); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Success = true
	return res
}
