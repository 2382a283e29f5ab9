package meshio

import (
	"fmt"
	"os"
	"path/filepath"

	"vtk-polydata/internal/mathutil"
	"vtk-polydata/internal/mesh"
	"vtk-polydata/internal/report"
	"vtk-polydata/internal/vtk"
)

// ExportOptions control how a mesh is written.
type ExportOptions struct {
	// Orientation is the forward/up frame to write in.
	Orientation mathutil.Orientation
	// ColorLayer picks the layer written as COLOR_SCALARS ("" = first).
	ColorLayer string
}

// Export writes m to path as ASCII PolyData. The file appears only once it
// has been written completely; on error any previous file at path is left
// untouched. m itself is not modified.
func Export(path string, m *mesh.Mesh, rep report.Reporter, opts ExportOptions) (mesh.Reduction, error) {
	conv, err := mathutil.AxisConversion(mathutil.DefaultOrientation, orientationOrDefault(opts.Orientation))
	if err != nil {
		rep.Report(report.Error, "%v", err)
		return mesh.Reduction{}, fmt.Errorf("meshio: export %s: %w", path, err)
	}

	doc, red, err := mesh.ToDocument(m, opts.ColorLayer)
	if err != nil {
		rep.Report(report.Error, "Export of %s failed: %v", m.Name, err)
		return red, fmt.Errorf("meshio: export %s: %w", path, err)
	}
	for i, p := range doc.Points {
		v := conv.Mul3x1([3]float64(p))
		doc.Points[i] = vtk.Point(v)
	}

	if kind, _ := vtk.Classify(doc.Title); kind != vtk.LineKeyword {
		rep.Report(report.Warning, "Mesh name %q will not be read back as the VTK title", doc.Title)
	}
	if red.Conflicting > 0 {
		rep.Report(report.Warning, "%s: %d vertices have several colors in %q; kept the first face's color",
			m.Name, red.Conflicting, doc.Color.Name)
	}
	if red.Loose > 0 {
		rep.Report(report.Warning, "%s: %d vertices belong to no face; written as white", m.Name, red.Loose)
	}

	if err := writeFile(path, doc); err != nil {
		rep.Report(report.Error, "Export of %s failed: %v", m.Name, err)
		return red, fmt.Errorf("meshio: export %s: %w", path, err)
	}
	rep.Report(report.Info, "Exported %s: %d vertices, %d faces", m.Name, len(doc.Points), len(doc.Polygons))
	return red, nil
}

// writeFile validates doc, encodes it to a temp file beside path and renames
// it into place.
func writeFile(path string, doc *vtk.Document) error {
	if err := vtk.Validate(doc); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := vtk.Encode(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
