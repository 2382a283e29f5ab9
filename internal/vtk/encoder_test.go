package vtk

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"testing"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func coloredPrism() *Document {
	return &Document{
		Title: "prism",
		Points: []Point{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{0, 0, 2.5}, {1, 0, 2.5}, {0, 1, 2.5},
		},
		Polygons: []Polygon{
			{0, 2, 1},
			{3, 4, 5},
			{0, 1, 4, 3},
			{1, 2, 5, 4},
			{2, 0, 3, 5},
		},
		Color: &ColorAttribute{
			Name: "Col",
			Values: [][4]float64{
				{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1},
				{0.25, 0.5, 0.75, 1}, {0.1, 0.2, 0.3, 0.4}, {1, 1, 1, 0},
			},
		},
	}
}

func TestEncodeCube(t *testing.T) {
	doc := &Document{
		Title:    "cube",
		Points:   []Point{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Polygons: []Polygon{{0, 1, 2, 3}},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `# vtk DataFile Version 4.2
cube
ASCII
DATASET POLYDATA
POINTS 4 float
0.000000 0.000000 0.000000
1.000000 0.000000 0.000000
1.000000 1.000000 0.000000
0.000000 1.000000 0.000000
POLYGONS 1 5
4 0 1 2 3
`
	if buf.String() != want {
		t.Errorf("Encode output mismatch\n got:\n%s\nwant:\n%s", buf.String(), want)
	}
	if strings.Contains(buf.String(), "POINT_DATA") {
		t.Error("color block written without a color attribute")
	}
}

func TestEncodeColorBlock(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, coloredPrism()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, line := range []string{
		"POLYGONS 5 23\n",
		"POINT_DATA 6\nCOLOR_SCALARS Col 4\n1.000000 0.000000 0.000000 1.000000\n",
		"0.100000 0.200000 0.300000 0.400000\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q", line)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		doc  *Document
	}{
		{"colored prism", coloredPrism()},
		{"empty", &Document{Title: "empty"}},
		{"points only", &Document{Title: "cloud", Points: []Point{{-1.5, 2.25, 1e-7}, {123456.789, -0.5, 0}}}},
		{"color without points", &Document{Title: "void", Color: &ColorAttribute{Name: "c"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, tc.doc); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, warn, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if warn != nil {
				t.Fatalf("unexpected warning %v", warn)
			}
			assertDocumentsEqual(t, tc.doc, got)
		})
	}
}

func TestEncodeIdempotent(t *testing.T) {
	var a, b bytes.Buffer
	doc := coloredPrism()
	if err := Encode(&a, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := Encode(&b, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("encoding the same document twice produced different bytes")
	}
}

func TestEncodeRejectsInvalidDocuments(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Document)
		want   error
	}{
		{"index out of range", func(d *Document) { d.Polygons[0][1] = 6 }, ErrPolygonIndexOutOfRange},
		{"negative index", func(d *Document) { d.Polygons[2][0] = -1 }, ErrPolygonIndexOutOfRange},
		{"two index face", func(d *Document) { d.Polygons[1] = Polygon{3, 4} }, ErrDegeneratePolygon},
		{"short color table", func(d *Document) { d.Color.Values = d.Color.Values[:5] }, ErrColorCountMismatch},
		{"color name with space", func(d *Document) { d.Color.Name = "my colors" }, ErrInvalidColorName},
		{"empty color name", func(d *Document) { d.Color.Name = "" }, ErrInvalidColorName},
		{"multi-line title", func(d *Document) { d.Title = "a\nb" }, ErrInvalidTitle},
		{"numeric title", func(d *Document) { d.Title = "2024" }, ErrInvalidTitle},
		{"keyword title", func(d *Document) { d.Title = "POINTS of interest" }, ErrInvalidTitle},
		{"NaN coordinate", func(d *Document) { d.Points[1][2] = math.NaN() }, ErrNonFiniteValue},
		{"infinite alpha", func(d *Document) { d.Color.Values[0][3] = math.Inf(1) }, ErrNonFiniteValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := coloredPrism()
			tc.mutate(doc)
			var buf bytes.Buffer
			err := Encode(&buf, doc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Encode error = %v, want %v", err, tc.want)
			}
			if buf.Len() != 0 {
				t.Errorf("%d bytes written before validation failed", buf.Len())
			}
		})
	}
}

func assertDocumentsEqual(t *testing.T, want, got *Document) {
	t.Helper()
	if got.Title != want.Title {
		t.Errorf("title = %q, want %q", got.Title, want.Title)
	}
	if len(got.Points) != len(want.Points) {
		t.Fatalf("got %d points, want %d", len(got.Points), len(want.Points))
	}
	for i := range want.Points {
		for k := 0; k < 3; k++ {
			if !almostEqual(got.Points[i][k], want.Points[i][k]) {
				t.Errorf("point %d = %v, want %v", i, got.Points[i], want.Points[i])
				break
			}
		}
	}
	if len(got.Polygons) != len(want.Polygons) {
		t.Fatalf("got %d polygons, want %d", len(got.Polygons), len(want.Polygons))
	}
	for i := range want.Polygons {
		if !equalPolygon(got.Polygons[i], want.Polygons[i]) {
			t.Errorf("polygon %d = %v, want %v", i, got.Polygons[i], want.Polygons[i])
		}
	}
	if (got.Color == nil) != (want.Color == nil) {
		t.Fatalf("color presence = %v, want %v", got.Color != nil, want.Color != nil)
	}
	if want.Color == nil {
		return
	}
	if got.Color.Name != want.Color.Name {
		t.Errorf("color name = %q, want %q", got.Color.Name, want.Color.Name)
	}
	if len(got.Color.Values) != len(want.Color.Values) {
		t.Fatalf("got %d colors, want %d", len(got.Color.Values), len(want.Color.Values))
	}
	for i := range want.Color.Values {
		for k := 0; k < 4; k++ {
			if !almostEqual(got.Color.Values[i][k], want.Color.Values[i][k]) {
				t.Errorf("color %d = %v, want %v", i, got.Color.Values[i], want.Color.Values[i])
				break
			}
		}
	}
}

func ExampleEncode() {
	doc := &Document{
		Title:    "triangle",
		Points:   []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Polygons: []Polygon{{0, 1, 2}},
	}
	if err := Encode(os.Stdout, doc); err != nil {
		fmt.Println(err)
	}
	// Output:
	// # vtk DataFile Version 4.2
	// triangle
	// ASCII
	// DATASET POLYDATA
	// POINTS 3 float
	// 0.000000 0.000000 0.000000
	// 1.000000 0.000000 0.000000
	// 0.000000 1.000000 0.000000
	// POLYGONS 1 4
	// 3 0 1 2
}

func TestEncodeUnreadableTitleDecodesEmpty(t *testing.T) {
	for _, title := range []string{"Cube.001", "a  b"} {
		doc := coloredPrism()
		doc.Title = title
		var buf bytes.Buffer
		if err := Encode(&buf, doc); err != nil {
			t.Fatalf("Encode(%q): %v", title, err)
		}
		back, _, err := Decode(&buf)
		if err != nil {
			t.Fatalf("Decode(%q): %v", title, err)
		}
		if back.Title != "" {
			t.Errorf("title %q decoded as %q, want empty", title, back.Title)
		}
		if len(back.Points) != len(doc.Points) {
			t.Errorf("title %q: got %d points, want %d", title, len(back.Points), len(doc.Points))
		}
	}
}
