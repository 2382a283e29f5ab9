package main

import (
	"flag"
	"fmt"
	"os"

	"vtk-polydata/internal/config"
	"vtk-polydata/internal/meshio"
	"vtk-polydata/internal/preview"
	"vtk-polydata/internal/report"
	"vtk-polydata/internal/scene"
)

// vtkconv imports one VTK file, optionally writes it back out in another
// orientation, and renders a preview.
//
//	vtkconv -in mesh.vtk -out clean.vtk -to-forward -Z -to-up Y -preview mesh.webp
func main() {
	in := flag.String("in", "", "Input .vtk file")
	out := flag.String("out", "", "Output .vtk file (optional)")
	forward := flag.String("forward", "", "Forward axis of the input file (default: Y)")
	up := flag.String("up", "", "Up axis of the input file (default: Z)")
	toForward := flag.String("to-forward", "", "Forward axis of the output file (default: same as input)")
	toUp := flag.String("to-up", "", "Up axis of the output file (default: same as input)")
	layer := flag.String("layer", "", "Color layer to export (default: first)")
	previewPath := flag.String("preview", "", "Write a preview image (.webp, .tga or .png)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: vtkconv -in mesh.vtk [-out out.vtk] [-preview out.webp]")
		os.Exit(2)
	}

	var src config.Config
	if err := src.Resolve(config.Flags{Forward: *forward, Up: *up, ColorLayer: *layer, Size: *size}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dst := src
	if *toForward != "" {
		dst.AxisForward = *toForward
	}
	if *toUp != "" {
		dst.AxisUp = *toUp
	}
	srcOrient, _ := src.Orientation()
	dstOrient, err := dst.Orientation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: output %v\n", err)
		os.Exit(1)
	}

	rep := report.NewConsole()
	lib := scene.NewLibrary()

	// Import and Export report their own failures.
	res, err := meshio.Import(*in, lib, rep, meshio.ImportOptions{Orientation: srcOrient})
	if err != nil {
		os.Exit(1)
	}

	if *out != "" {
		_, err := meshio.Export(*out, res.Mesh, rep, meshio.ExportOptions{
			Orientation: dstOrient,
			ColorLayer:  src.ColorLayer,
		})
		if err != nil {
			os.Exit(1)
		}
	}

	if *previewPath != "" {
		img := preview.Render(res.Mesh, preview.Settings{
			Size:        src.PreviewSize,
			Supersample: src.Supersample,
			ColorLayer:  src.ColorLayer,
			FillRatio:   src.FillRatio,
		})
		if err := preview.Save(*previewPath, img); err != nil {
			rep.Report(report.Error, "%v", err)
			os.Exit(1)
		}
		rep.Report(report.Info, "Preview: %s", *previewPath)
	}

	// Partial imports still write output but signal it.
	if res.Warning != nil {
		os.Exit(3)
	}
}
