package main

import (
	"fmt"
	"math"
	"os"

	"vtk-polydata/internal/vtk"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: inspectvtk file.vtk [...]")
		os.Exit(2)
	}

	failed := false
	for _, arg := range os.Args[1:] {
		doc, warn, err := decode(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}
		fmt.Printf("\n=== %s (title=%q points=%d polygons=%d) ===\n", arg, doc.Title, len(doc.Points), len(doc.Polygons))
		if warn != nil {
			fmt.Printf("  PARTIAL at line %d: %s\n", warn.Line, warn.Reason)
		}
		printGeometry(doc)
	}
	if failed {
		os.Exit(1)
	}
}

func decode(path string) (*vtk.Document, *vtk.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return vtk.Decode(f)
}

func printGeometry(doc *vtk.Document) {
	if len(doc.Points) > 0 {
		minV, maxV := doc.Points[0], doc.Points[0]
		for _, p := range doc.Points[1:] {
			for k := 0; k < 3; k++ {
				minV[k] = math.Min(minV[k], p[k])
				maxV[k] = math.Max(maxV[k], p[k])
			}
		}
		fmt.Printf("  bbox=(%.3f,%.3f,%.3f) min=(%.3f,%.3f,%.3f) max=(%.3f,%.3f,%.3f)\n",
			maxV[0]-minV[0], maxV[1]-minV[1], maxV[2]-minV[2],
			minV[0], minV[1], minV[2],
			maxV[0], maxV[1], maxV[2])
	}

	// Face size histogram
	sizes := map[int]int{}
	maxSize := 0
	for _, p := range doc.Polygons {
		sizes[len(p)]++
		maxSize = max(maxSize, len(p))
	}
	for n := 3; n <= maxSize; n++ {
		if sizes[n] > 0 {
			fmt.Printf("  %d-gons: %d\n", n, sizes[n])
		}
	}
	fmt.Printf("  POLYGONS size field: %d\n", doc.IndexCount())

	if doc.Color != nil {
		var sum [4]float64
		for _, c := range doc.Color.Values {
			for k := range sum {
				sum[k] += c[k]
			}
		}
		n := math.Max(float64(len(doc.Color.Values)), 1)
		fmt.Printf("  COLOR_SCALARS %s: mean rgba=(%.3f,%.3f,%.3f,%.3f)\n",
			doc.Color.Name, sum[0]/n, sum[1]/n, sum[2]/n, sum[3]/n)
	}
}
