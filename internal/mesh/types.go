package mesh

import "github.com/go-gl/mathgl/mgl64"

// Polygon is one face. Its corners are the loops
// Loops[LoopStart : LoopStart+LoopTotal], in winding order.
type Polygon struct {
	LoopStart int
	LoopTotal int
}

// Loop is one face corner, referring to a vertex.
type Loop struct {
	Vert int
}

// ColorLayer stores one RGBA color per loop, so a vertex shared by several
// faces may carry a different color in each.
type ColorLayer struct {
	Name string
	Data [][4]float64 // len == len(Mesh.Loops)
}

// Mesh is the scene-side geometry the codec converts to and from.
type Mesh struct {
	Name        string
	Verts       []mgl64.Vec3
	Polys       []Polygon
	Loops       []Loop
	ColorLayers []ColorLayer
}

// PolyVerts returns the vertex indices of polygon i in winding order.
func (m *Mesh) PolyVerts(i int) []int {
	p := m.Polys[i]
	idx := make([]int, p.LoopTotal)
	for k := range idx {
		idx[k] = m.Loops[p.LoopStart+k].Vert
	}
	return idx
}

// AddPolygon appends a face over the given vertices and returns its index.
// Existing color layers get opaque white for the new loops.
func (m *Mesh) AddPolygon(verts ...int) int {
	m.Polys = append(m.Polys, Polygon{LoopStart: len(m.Loops), LoopTotal: len(verts)})
	for _, v := range verts {
		m.Loops = append(m.Loops, Loop{Vert: v})
	}
	for i := range m.ColorLayers {
		for range verts {
			m.ColorLayers[i].Data = append(m.ColorLayers[i].Data, White)
		}
	}
	return len(m.Polys) - 1
}

// Layer returns the color layer with the given name, or nil.
func (m *Mesh) Layer(name string) *ColorLayer {
	for i := range m.ColorLayers {
		if m.ColorLayers[i].Name == name {
			return &m.ColorLayers[i]
		}
	}
	return nil
}

// Transform applies a 3×3 linear map (usually an axis conversion) to every vertex.
func (m *Mesh) Transform(mat mgl64.Mat3) {
	for i, v := range m.Verts {
		m.Verts[i] = mat.Mul3x1(v)
	}
}

// White is the color given to loops and points with no color data.
var White = [4]float64{1, 1, 1, 1}
