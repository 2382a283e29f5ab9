package vtk

import (
	"errors"
	"strings"
	"testing"
)

const cubeFile = `# vtk DataFile Version 4.2
cube
ASCII
DATASET POLYDATA
POINTS 4 float
0.0 0.0 0.0
1.0 0.0 0.0
1.0 1.0 0.0
0.0 1.0 0.0
POLYGONS 1 5
4 0 1 2 3
`

func TestDecodeCube(t *testing.T) {
	doc, warn, err := Decode(strings.NewReader(cubeFile))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if doc.Title != "cube" {
		t.Errorf("title = %q, want %q", doc.Title, "cube")
	}
	want := []Point{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	if len(doc.Points) != len(want) {
		t.Fatalf("got %d points, want %d", len(doc.Points), len(want))
	}
	for i := range want {
		if doc.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, doc.Points[i], want[i])
		}
	}
	if len(doc.Polygons) != 1 || !equalPolygon(doc.Polygons[0], Polygon{0, 1, 2, 3}) {
		t.Errorf("polygons = %v, want [[0 1 2 3]]", doc.Polygons)
	}
	if doc.Color != nil {
		t.Errorf("unexpected color attribute %q", doc.Color.Name)
	}
}

func TestDecodeColors(t *testing.T) {
	input := `# vtk DataFile Version 4.2
tri
ASCII
DATASET POLYDATA
POINTS 3 float
0 0 0 1 0 0
0 1 0
POLYGONS 1 4
3 2 1 0
POINT_DATA 3
COLOR_SCALARS Col 4
1.0 0.0 0.0 1.0
0.0 1.0 0.0 1.0
0.0 0.0 1.0 0.5
`
	doc, _, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(doc.Points))
	}
	if !equalPolygon(doc.Polygons[0], Polygon{2, 1, 0}) {
		t.Errorf("polygon winding changed: %v", doc.Polygons[0])
	}
	if doc.Color == nil || doc.Color.Name != "Col" {
		t.Fatalf("color attribute = %+v, want Col", doc.Color)
	}
	if got := doc.Color.Values[2]; got != [4]float64{0, 0, 1, 0.5} {
		t.Errorf("color 2 = %v", got)
	}
}

func TestDecodeTitleQuirks(t *testing.T) {
	// Only the first bare keyword line names the mesh. Lines the keyword
	// grammar rejects (like "Cube.001") are skipped entirely.
	input := `# vtk DataFile Version 4.2
Cube.001
ASCII
first name
DATASET POLYDATA
second name
POINTS 0 float
POLYGONS 0 0
`
	doc, _, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Title != "first name" {
		t.Errorf("title = %q, want %q", doc.Title, "first name")
	}
}

func TestDecodePointDataIsNotATitle(t *testing.T) {
	input := "Cube.001\nASCII\nDATASET POLYDATA\nPOINTS 1 float\n0 0 0\nPOINT_DATA 1\nCOLOR_SCALARS c 4\n1 1 1 1\n"
	doc, _, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Title != "" {
		t.Errorf("title = %q, want empty", doc.Title)
	}
	if doc.Color == nil || len(doc.Color.Values) != 1 {
		t.Errorf("color attribute = %+v", doc.Color)
	}
}

func TestDecodeFortranExponent(t *testing.T) {
	input := "t\nASCII\nPOINTS 1 double\n1.5d2 -2.0D-1 3E0\n"
	doc, _, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Points[0] != (Point{150, -0.2, 3}) {
		t.Errorf("point = %v", doc.Points[0])
	}
}

func TestDecodePlusExponent(t *testing.T) {
	input := "t\nASCII\nPOINTS 4 float\n0 0 0\n1 0 0\n0 1 0\n1e+03 +2.5E+00 -1.5d+01\n"
	doc, warn, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if len(doc.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(doc.Points))
	}
	if doc.Points[3] != (Point{1000, 2.5, -15}) {
		t.Errorf("point 3 = %v", doc.Points[3])
	}
}

func TestDecodeByteOrderMark(t *testing.T) {
	doc, _, err := Decode(strings.NewReader("\ufeff" + cubeFile))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Title != "cube" || len(doc.Points) != 4 {
		t.Errorf("got title %q with %d points", doc.Title, len(doc.Points))
	}
}

func TestDecodePartialImport(t *testing.T) {
	testCases := []struct {
		name    string
		section string
		reason  string
	}{
		{"scalars", "SCALARS temperature float 1", "SCALARS unsupported"},
		{"normals", "NORMALS n float", "NORMALS unsupported"},
		{"lines", "LINES 1 3", "LINES unsupported"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := cubeFile + "POINT_DATA 4\n" + tc.section + "\nLOOKUP_TABLE default\n1 2 3 4\n"
			doc, warn, err := Decode(strings.NewReader(input))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if warn == nil || warn.Reason != tc.reason {
				t.Fatalf("warning = %v, want %q", warn, tc.reason)
			}
			if warn.Line != 13 {
				t.Errorf("warning line = %d, want 13", warn.Line)
			}
			if len(doc.Points) != 4 || len(doc.Polygons) != 1 {
				t.Errorf("partial document lost geometry: %d points, %d polygons", len(doc.Points), len(doc.Polygons))
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "unstructured grid",
			input: "# vtk DataFile Version 4.2\ngrid\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 1 float\n0 0 0\n",
			want:  ErrUnsupportedDataset,
		},
		{
			name:  "structured points",
			input: "grid\nASCII\nDATASET STRUCTURED_POINTS\n",
			want:  ErrUnsupportedDataset,
		},
		{
			name:  "binary header",
			input: "mesh\nBINARY\nDATASET POLYDATA\n",
			want:  ErrNotASCII,
		},
		{
			name:  "missing ascii",
			input: "mesh\nDATASET POLYDATA\nPOINTS 1 float\n0 0 0\n",
			want:  ErrNotASCII,
		},
		{
			name:  "numbers before section",
			input: "mesh\nASCII\n1 2 3\n",
			want:  ErrNumericBeforeDataset,
		},
		{
			name:  "numeric title",
			input: "# vtk DataFile Version 4.2\n42\nASCII\n",
			want:  ErrNumericBeforeDataset,
		},
		{
			name:  "truncated points",
			input: "mesh\nASCII\nPOINTS 2 float\n0 0 0\n1 1\n",
			want:  ErrTruncatedPointData,
		},
		{
			name:  "truncated polygon",
			input: "mesh\nASCII\nPOINTS 3 float\n0 0 0 1 0 0 0 1 0\nPOLYGONS 1 4\n3 0 1\n",
			want:  ErrTruncatedPolygonData,
		},
		{
			name:  "polygon size overflows",
			input: "mesh\nASCII\nPOINTS 3 float\n0 0 0 1 0 0 0 1 0\nPOLYGONS 1 2\n9223372036854775807 0\n",
			want:  ErrTruncatedPolygonData,
		},
		{
			name:  "non-numeric token in points",
			input: "mesh\nASCII\nPOINTS 2 float\n0 0 0\n1.0 nan 0\n",
			want:  ErrMalformedNumber,
		},
		{
			name:  "degenerate polygon",
			input: "mesh\nASCII\nPOINTS 3 float\n0 0 0 1 0 0 0 1 0\nPOLYGONS 1 3\n2 0 1\n",
			want:  ErrDegeneratePolygon,
		},
		{
			name:  "polygon index out of range",
			input: "mesh\nASCII\nPOINTS 3 float\n0 0 0 1 0 0 0 1 0\nPOLYGONS 1 4\n3 0 1 3\n",
			want:  ErrPolygonIndexOutOfRange,
		},
		{
			name:  "fractional polygon index",
			input: "mesh\nASCII\nPOINTS 3 float\n0 0 0 1 0 0 0 1 0\nPOLYGONS 1 4\n3 0 1 2.0\n",
			want:  ErrMalformedNumber,
		},
		{
			name:  "malformed float",
			input: "mesh\nASCII\nPOINTS 1 float\n0 0 1-2\n",
			want:  ErrMalformedNumber,
		},
		{
			name:  "truncated colors",
			input: "mesh\nASCII\nPOINTS 1 float\n0 0 0\nCOLOR_SCALARS c 4\n1 1 1\n",
			want:  ErrTruncatedColorData,
		},
		{
			name:  "color count mismatch",
			input: "mesh\nASCII\nPOINTS 2 float\n0 0 0 1 1 1\nCOLOR_SCALARS c 4\n1 1 1 1\n",
			want:  ErrColorCountMismatch,
		},
		{
			name:  "second color block",
			input: "mesh\nASCII\nPOINTS 1 float\n0 0 0\nCOLOR_SCALARS a 4\n1 1 1 1\nCOLOR_SCALARS b 4\n0 0 0 1\n",
			want:  ErrMultipleColorAttributes,
		},
		{
			name:  "color header without name",
			input: "mesh\nASCII\nPOINTS 1 float\n0 0 0\nCOLOR_SCALARS 4\n",
			want:  ErrMalformedColorScalarsHeader,
		},
		{
			name:  "rgb color header",
			input: "mesh\nASCII\nPOINTS 1 float\n0 0 0\nCOLOR_SCALARS rgb 3\n1 1 1\n",
			want:  ErrMalformedColorScalarsHeader,
		},
		{
			name:  "binary payload",
			input: "mesh\nASCII\nPOINTS 1 float\n\x00\x01\x3f\x80\n",
			want:  ErrUnreadableStream,
		},
		{
			name:  "invalid utf-8",
			input: "mesh\nASCII\n\xff\xfe\xfd\n",
			want:  ErrUnreadableStream,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, warn, err := Decode(strings.NewReader(tc.input))
			if !errors.Is(err, tc.want) {
				t.Fatalf("Decode error = %v, want %v", err, tc.want)
			}
			if doc != nil || warn != nil {
				t.Errorf("fatal error returned document %v / warning %v", doc, warn)
			}
		})
	}
}

func TestDecodeErrorLine(t *testing.T) {
	_, _, err := Decode(strings.NewReader("mesh\nASCII\n\nDATASET UNSTRUCTURED_GRID\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("error %q does not name line 4", err)
	}
}

func TestDecodeCountConsistency(t *testing.T) {
	doc, _, err := Decode(strings.NewReader(cubeFile))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, p := range doc.Polygons {
		for _, idx := range p {
			if idx < 0 || idx >= len(doc.Points) {
				t.Errorf("polygon %d index %d outside [0,%d)", i, idx, len(doc.Points))
			}
		}
	}
}

func equalPolygon(a, b Polygon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
