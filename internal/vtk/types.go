package vtk

// Point is a vertex position. Its identity is its index in Document.Points.
type Point [3]float64

// Polygon is an ordered list of point indices (winding is significant).
type Polygon []int

// ColorAttribute holds one RGBA quadruple per point, in point order.
type ColorAttribute struct {
	Name   string
	Values [][4]float64
}

// Document is a decoded (or to-be-encoded) PolyData dataset.
type Document struct {
	Title    string
	Points   []Point
	Polygons []Polygon
	Color    *ColorAttribute // nil when the file carries no COLOR_SCALARS
}

// IndexCount returns the POLYGONS size field: one count token plus the
// indices of every polygon.
func (d *Document) IndexCount() int {
	n := 0
	for _, p := range d.Polygons {
		n += 1 + len(p)
	}
	return n
}

// Mode selects which buffer numeric lines feed while decoding.
type Mode int

const (
	ModeUnset Mode = iota
	ModePoints
	ModePolygons
	ModeColorScalars
)

func (m Mode) String() string {
	switch m {
	case ModePoints:
		return "POINTS"
	case ModePolygons:
		return "POLYGONS"
	case ModeColorScalars:
		return "COLOR_SCALARS"
	}
	return "unset"
}

// Warning reports a decode that stopped early but kept what it had read.
type Warning struct {
	Line   int
	Reason string
}

func (w *Warning) String() string {
	return w.Reason
}
