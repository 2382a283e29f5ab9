package vtk

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Header is the first line of every file the encoder writes.
const Header = "# vtk DataFile Version 4.2"

// reservedTitles are first words the decoder would treat as structure.
var reservedTitles = map[string]bool{
	"ASCII":         true,
	"BINARY":        true,
	"DATASET":       true,
	"POINTS":        true,
	"POLYGONS":      true,
	"POINT_DATA":    true,
	"COLOR_SCALARS": true,
}

// Validate checks the invariants the encoder relies on.
func Validate(doc *Document) error {
	if strings.ContainsAny(doc.Title, "\r\n") {
		return fmt.Errorf("vtk: title %q: %w: line break", doc.Title, ErrInvalidTitle)
	}
	switch kind, text := Classify(doc.Title); kind {
	case LineNumeric:
		return fmt.Errorf("vtk: title %q: %w: reads as numeric data", doc.Title, ErrInvalidTitle)
	case LineKeyword:
		first := strings.Fields(text)[0]
		if reservedTitles[first] || unsupportedSections[first] {
			return fmt.Errorf("vtk: title %q: %w: reads as a section keyword", doc.Title, ErrInvalidTitle)
		}
	}

	n := len(doc.Points)
	for i, p := range doc.Points {
		if !finite(p[:]...) {
			return fmt.Errorf("vtk: point %d %v: %w", i, p, ErrNonFiniteValue)
		}
	}
	for i, p := range doc.Polygons {
		if len(p) < 3 {
			return fmt.Errorf("vtk: polygon %d has %d indices: %w", i, len(p), ErrDegeneratePolygon)
		}
		for _, idx := range p {
			if idx < 0 || idx >= n {
				return fmt.Errorf("vtk: polygon %d index %d (points=%d): %w", i, idx, n, ErrPolygonIndexOutOfRange)
			}
		}
	}

	if doc.Color != nil {
		if !isColorName(doc.Color.Name) {
			return fmt.Errorf("vtk: color attribute %q: %w", doc.Color.Name, ErrInvalidColorName)
		}
		if len(doc.Color.Values) != n {
			return fmt.Errorf("vtk: %d colors for %d points: %w", len(doc.Color.Values), n, ErrColorCountMismatch)
		}
		for i, c := range doc.Color.Values {
			if !finite(c[:]...) {
				return fmt.Errorf("vtk: color %d %v: %w", i, c, ErrNonFiniteValue)
			}
		}
	}
	return nil
}

// Encode writes doc as legacy ASCII PolyData. The document is validated
// before anything is written.
//
// Validate only rejects titles that would corrupt the file. A title the
// decoder does not take as one (punctuation such as "Cube.001", doubled or
// leading spaces) is still written, and decodes back as an empty title.
func Encode(w io.Writer, doc *Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%s\nASCII\n", Header, doc.Title)

	// Points
	fmt.Fprintf(bw, "DATASET POLYDATA\nPOINTS %d float\n", len(doc.Points))
	for _, p := range doc.Points {
		fmt.Fprintf(bw, "%f %f %f\n", p[0], p[1], p[2])
	}

	// Faces
	fmt.Fprintf(bw, "POLYGONS %d %d\n", len(doc.Polygons), doc.IndexCount())
	row := make([]byte, 0, 64)
	for _, p := range doc.Polygons {
		row = strconv.AppendInt(row[:0], int64(len(p)), 10)
		for _, idx := range p {
			row = append(row, ' ')
			row = strconv.AppendInt(row, int64(idx), 10)
		}
		row = append(row, '\n')
		bw.Write(row)
	}

	// Point colors
	if doc.Color != nil {
		fmt.Fprintf(bw, "POINT_DATA %d\nCOLOR_SCALARS %s 4\n", len(doc.Points), doc.Color.Name)
		for _, c := range doc.Color.Values {
			fmt.Fprintf(bw, "%f %f %f %f\n", c[0], c[1], c[2], c[3])
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("vtk: write: %w", err)
	}
	return nil
}

func isColorName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
