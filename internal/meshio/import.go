package meshio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vtk-polydata/internal/mathutil"
	"vtk-polydata/internal/mesh"
	"vtk-polydata/internal/report"
	"vtk-polydata/internal/scene"
	"vtk-polydata/internal/vtk"
)

// ImportOptions control how a file is brought into the scene.
type ImportOptions struct {
	// Orientation is the file's forward/up frame. Zero value means the
	// scene default (Y forward, Z up).
	Orientation mathutil.Orientation
}

// ImportResult describes a successful (possibly partial) import.
type ImportResult struct {
	Mesh     *mesh.Mesh
	Replaced bool         // an existing mesh with the same name was replaced
	Warning  *vtk.Warning // non-nil for a partial import
}

// Import decodes the VTK file at path and hands the mesh to store. Nothing
// reaches the store unless the whole file decoded (a partial import counts
// as decoded). Status goes to rep.
func Import(path string, store scene.Store, rep report.Reporter, opts ImportOptions) (*ImportResult, error) {
	rep.Report(report.Info, "Importing %s", path)

	conv, err := mathutil.AxisConversion(orientationOrDefault(opts.Orientation), mathutil.DefaultOrientation)
	if err != nil {
		rep.Report(report.Error, "%v", err)
		return nil, fmt.Errorf("meshio: import %s: %w", path, err)
	}

	doc, warn, err := decodeFile(path)
	if err != nil {
		rep.Report(report.Error, "Import of %s failed: %v", path, err)
		return nil, fmt.Errorf("meshio: import %s: %w", path, err)
	}
	if warn != nil {
		rep.Report(report.Warning, "Partial import of %s (line %d): %s", path, warn.Line, warn.Reason)
	}

	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	m := mesh.FromDocument(doc)
	m.Transform(conv)

	replaced := store.Replace(m)
	rep.Report(report.Info, "Imported %s: %d vertices, %d faces", m.Name, len(m.Verts), len(m.Polys))

	return &ImportResult{Mesh: m, Replaced: replaced, Warning: warn}, nil
}

func decodeFile(path string) (*vtk.Document, *vtk.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return vtk.Decode(f)
}

func orientationOrDefault(o mathutil.Orientation) mathutil.Orientation {
	if o.Forward == "" && o.Up == "" {
		return mathutil.DefaultOrientation
	}
	return o
}
