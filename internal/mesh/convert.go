package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"vtk-polydata/internal/vtk"
)

// Reduction describes what ToDocument lost when flattening per-loop colors
// to one color per point.
type Reduction struct {
	Conflicting int // points whose loops disagree; the first loop's color was kept
	Loose       int // points used by no face; written as opaque white
}

// Lossy reports whether any color information was dropped or invented.
func (r Reduction) Lossy() bool {
	return r.Conflicting > 0 || r.Loose > 0
}

// ToDocument builds the codec view of m. layer selects the color layer to
// export; "" picks the first one, if any.
//
// VTK stores one color per point, the mesh one per loop. Each point takes the
// color of the first loop that uses it, scanning faces in order; later loops
// are ignored even when their color differs.
func ToDocument(m *Mesh, layer string) (*vtk.Document, Reduction, error) {
	var red Reduction
	doc := &vtk.Document{
		Title:    m.Name,
		Points:   make([]vtk.Point, len(m.Verts)),
		Polygons: make([]vtk.Polygon, len(m.Polys)),
	}
	for i, v := range m.Verts {
		doc.Points[i] = vtk.Point{v[0], v[1], v[2]}
	}
	for i := range m.Polys {
		doc.Polygons[i] = m.PolyVerts(i)
	}

	var cl *ColorLayer
	switch {
	case layer != "":
		if cl = m.Layer(layer); cl == nil {
			return nil, red, fmt.Errorf("mesh: %s has no color layer %q", m.Name, layer)
		}
	case len(m.ColorLayers) > 0:
		cl = &m.ColorLayers[0]
	}
	if cl == nil {
		return doc, red, nil
	}
	if len(cl.Data) != len(m.Loops) {
		return nil, red, fmt.Errorf("mesh: color layer %q has %d entries for %d loops", cl.Name, len(cl.Data), len(m.Loops))
	}

	values := make([][4]float64, len(m.Verts))
	seen := make([]bool, len(m.Verts))
	conflict := make([]bool, len(m.Verts))
	for _, p := range m.Polys {
		for li := p.LoopStart; li < p.LoopStart+p.LoopTotal; li++ {
			v := m.Loops[li].Vert
			if v < 0 || v >= len(values) {
				continue // vtk.Validate reports the bad index
			}
			if !seen[v] {
				values[v] = cl.Data[li]
				seen[v] = true
			} else if values[v] != cl.Data[li] && !conflict[v] {
				conflict[v] = true
				red.Conflicting++
			}
		}
	}
	for v, ok := range seen {
		if !ok {
			values[v] = White
			red.Loose++
		}
	}
	doc.Color = &vtk.ColorAttribute{Name: cl.Name, Values: values}
	return doc, red, nil
}

// FromDocument builds a mesh named after the document title. Faces keep the
// document's order and winding; a color attribute becomes a single color
// layer with every loop taking its point's color.
func FromDocument(doc *vtk.Document) *Mesh {
	m := &Mesh{
		Name:  doc.Title,
		Verts: make([]mgl64.Vec3, len(doc.Points)),
	}
	for i, p := range doc.Points {
		m.Verts[i] = mgl64.Vec3{p[0], p[1], p[2]}
	}
	if doc.Color != nil {
		m.ColorLayers = []ColorLayer{{Name: doc.Color.Name}}
	}
	for _, p := range doc.Polygons {
		m.AddPolygon(p...)
	}
	if doc.Color != nil {
		data := m.ColorLayers[0].Data
		for li, l := range m.Loops {
			data[li] = doc.Color.Values[l.Vert]
		}
	}
	return m
}
