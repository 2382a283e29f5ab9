package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vtk-polydata/internal/batch"
	"vtk-polydata/internal/config"
	"vtk-polydata/internal/preview"
	"vtk-polydata/internal/report"
	"vtk-polydata/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory of .vtk files")
	outputDir := flag.String("output", "", "Output directory (default: <input>-out)")
	forward := flag.String("forward", "", "Forward axis of the files: X Y Z -X -Y -Z (default: Y)")
	up := flag.String("up", "", "Up axis of the files (default: Z)")
	layer := flag.String("layer", "", "Color layer to export (default: first)")
	previewExt := flag.String("preview", "", "Preview image format: webp, tga, png or none")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Convert only first N files for testing")
	verbose := flag.Bool("v", false, "Print per-file import/export messages")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	err := cfg.Resolve(config.Flags{
		Forward:    *forward,
		Up:         *up,
		ColorLayer: *layer,
		InputDir:   *inputDir,
		OutputDir:  *outputDir,
		Preview:    *previewExt,
		Size:       *size,
		Workers:    *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no input directory. Use -input flag or config.json.")
		os.Exit(1)
	}
	orientation, _ := cfg.Orientation()

	files, err := batch.Collect(cfg.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}

	if len(files) == 0 {
		fmt.Println("No .vtk files found.")
		os.Exit(0)
	}

	fmt.Printf("VTK PolyData batch conversion (forward %s, up %s)\n", cfg.AxisForward, cfg.AxisUp)
	fmt.Printf("Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	var rep report.Reporter = report.Discard
	if *verbose {
		rep = report.NewConsole()
	}
	lib := scene.NewLibrary()

	start := time.Now()

	results := batch.Run(batch.Config{
		InputDir:    cfg.InputDir,
		OutputDir:   cfg.OutputDir,
		Store:       lib,
		Reporter:    rep,
		Orientation: orientation,
		ColorLayer:  cfg.ColorLayer,
		Preview:     cfg.Preview,
		Render: preview.Settings{
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
			ColorLayer:  cfg.ColorLayer,
			FillRatio:   cfg.FillRatio,
		},
		Workers:  cfg.Workers,
		Progress: true,
	}, files)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var failed, partial []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		} else if r.Partial != "" {
			partial = append(partial, r)
		}
	}

	fmt.Printf("Converted: %d/%d (%d meshes in scene)\n", len(results)-len(failed), len(files), lib.Len())

	if len(partial) > 0 {
		fmt.Printf("\nPartial (%d):\n", len(partial))
		for _, r := range partial {
			fmt.Printf("  %s: %s\n", r.File, r.Partial)
		}
	}

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(len(failed), 20)
		for _, r := range failed[:limit] {
			fmt.Printf("  %s: %s\n", r.File, r.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
