package vtk

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineSize = 16 << 20

// Sections the decoder cannot represent. Reaching one ends the import early
// with a warning instead of misreading the numbers that follow.
var unsupportedSections = map[string]bool{
	"SCALARS":             true,
	"VECTORS":             true,
	"NORMALS":             true,
	"TEXTURE_COORDINATES": true,
	"TENSORS":             true,
	"FIELD":               true,
	"VERTICES":            true,
	"LINES":               true,
	"TRIANGLE_STRIPS":     true,
	"CELL_DATA":           true,
	"LOOKUP_TABLE":        true,
}

// Decoder reads one legacy ASCII PolyData file line by line.
type Decoder struct {
	sc *bufio.Scanner

	line      int
	ascii     bool
	mode      Mode
	title     string
	hasTitle  bool
	colorName string
	hasColor  bool

	points []float64
	polys  []int
	colors []float64
}

// NewDecoder returns a decoder reading from r. A leading byte order mark is
// consumed; UTF-16 input with a BOM is transcoded to UTF-8.
func NewDecoder(r io.Reader) *Decoder {
	tr := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	sc := bufio.NewScanner(tr)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Decoder{sc: sc}
}

// Decode reads a whole document from r. See Decoder.Decode.
func Decode(r io.Reader) (*Document, *Warning, error) {
	return NewDecoder(r).Decode()
}

// Decode consumes the input and returns the document. A non-nil Warning
// means parsing stopped at an unsupported section; the document then holds
// everything read before it. On error no document is returned.
func (d *Decoder) Decode() (*Document, *Warning, error) {
	for d.sc.Scan() {
		d.line++
		warn, err := d.feed(d.sc.Text())
		if err != nil {
			return nil, nil, err
		}
		if warn != nil {
			doc, err := d.finish()
			if err != nil {
				return nil, nil, err
			}
			return doc, warn, nil
		}
	}
	if err := d.sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("vtk: line %d: %w: %v", d.line+1, ErrUnreadableStream, err)
	}
	doc, err := d.finish()
	if err != nil {
		return nil, nil, err
	}
	return doc, nil, nil
}

func (d *Decoder) feed(raw string) (*Warning, error) {
	kind, text := Classify(raw)
	switch kind {
	case LineComment:
		return nil, nil
	case LineKeyword:
		return d.keyword(text)
	case LineNumeric:
		return nil, d.numeric(text)
	}
	if isBinary(text) {
		return nil, d.errorf(ErrUnreadableStream)
	}
	// Inside a section a line starting like a number must be one.
	if d.mode != ModeUnset && startsNumeric(text) {
		return nil, fmt.Errorf("vtk: line %d: %w: %q", d.line, ErrMalformedNumber, text)
	}
	return nil, nil
}

func (d *Decoder) keyword(text string) (*Warning, error) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "ASCII":
		d.ascii = true
		return nil, nil
	case "BINARY":
		return nil, d.errorf(ErrNotASCII)
	case "DATASET":
		if len(fields) == 2 && fields[1] == "POLYDATA" {
			return nil, nil
		}
		return nil, fmt.Errorf("vtk: line %d: %w: %s", d.line, ErrUnsupportedDataset, strings.Join(fields[1:], " "))
	case "POINTS":
		d.mode = ModePoints
		return nil, nil
	case "POLYGONS":
		d.mode = ModePolygons
		return nil, nil
	case "POINT_DATA":
		return nil, nil
	case "COLOR_SCALARS":
		return nil, d.colorHeader(fields)
	}
	if unsupportedSections[fields[0]] {
		return &Warning{Line: d.line, Reason: fields[0] + " unsupported"}, nil
	}
	if !d.hasTitle {
		d.title = text
		d.hasTitle = true
	}
	return nil, nil
}

func (d *Decoder) colorHeader(fields []string) error {
	if d.hasColor {
		return d.errorf(ErrMultipleColorAttributes)
	}
	if len(fields) != 3 {
		return d.errorf(ErrMalformedColorScalarsHeader)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("vtk: line %d: %w: component count %q", d.line, ErrMalformedColorScalarsHeader, fields[2])
	}
	if n != 4 {
		return fmt.Errorf("vtk: line %d: %w: %d components, only RGBA is supported", d.line, ErrMalformedColorScalarsHeader, n)
	}
	d.colorName = fields[1]
	d.hasColor = true
	d.mode = ModeColorScalars
	return nil
}

func (d *Decoder) numeric(text string) error {
	if d.mode == ModeUnset {
		return d.errorf(ErrNumericBeforeDataset)
	}
	if !d.ascii {
		return d.errorf(ErrNotASCII)
	}
	for _, tok := range strings.Fields(text) {
		switch d.mode {
		case ModePolygons:
			v, err := strconv.Atoi(tok)
			if err != nil {
				return fmt.Errorf("vtk: line %d: %w: %q", d.line, ErrMalformedNumber, tok)
			}
			d.polys = append(d.polys, v)
		default:
			v, err := parseFloat(tok)
			if err != nil {
				return fmt.Errorf("vtk: line %d: %w: %q", d.line, ErrMalformedNumber, tok)
			}
			if d.mode == ModePoints {
				d.points = append(d.points, v)
			} else {
				d.colors = append(d.colors, v)
			}
		}
	}
	return nil
}

// finish groups the flat buffers into the document.
func (d *Decoder) finish() (*Document, error) {
	if len(d.points)%3 != 0 {
		return nil, fmt.Errorf("vtk: %d point values: %w", len(d.points), ErrTruncatedPointData)
	}
	doc := &Document{Title: d.title}
	doc.Points = make([]Point, 0, len(d.points)/3)
	for i := 0; i < len(d.points); i += 3 {
		doc.Points = append(doc.Points, Point{d.points[i], d.points[i+1], d.points[i+2]})
	}

	polys, err := groupPolygons(d.polys, len(doc.Points))
	if err != nil {
		return nil, err
	}
	doc.Polygons = polys

	if len(d.colors) > 0 || d.hasColor {
		if len(d.colors)%4 != 0 {
			return nil, fmt.Errorf("vtk: %d color values: %w", len(d.colors), ErrTruncatedColorData)
		}
		if len(d.colors) != 4*len(doc.Points) {
			return nil, fmt.Errorf("vtk: %d colors for %d points: %w", len(d.colors)/4, len(doc.Points), ErrColorCountMismatch)
		}
		attr := &ColorAttribute{Name: d.colorName, Values: make([][4]float64, 0, len(d.colors)/4)}
		for i := 0; i < len(d.colors); i += 4 {
			attr.Values = append(attr.Values, [4]float64{d.colors[i], d.colors[i+1], d.colors[i+2], d.colors[i+3]})
		}
		doc.Color = attr
	}
	return doc, nil
}

// groupPolygons splits the self-delimiting "n i0 .. i(n-1)" stream.
func groupPolygons(buf []int, pointCount int) ([]Polygon, error) {
	var polys []Polygon
	for i := 0; i < len(buf); {
		n := buf[i]
		if n < 3 {
			return nil, fmt.Errorf("vtk: polygon %d has %d indices: %w", len(polys), n, ErrDegeneratePolygon)
		}
		if n > len(buf)-i-1 {
			return nil, fmt.Errorf("vtk: polygon %d needs %d indices, %d left: %w", len(polys), n, len(buf)-i-1, ErrTruncatedPolygonData)
		}
		p := make(Polygon, n)
		copy(p, buf[i+1:i+1+n])
		for _, idx := range p {
			if idx < 0 || idx >= pointCount {
				return nil, fmt.Errorf("vtk: polygon %d index %d (points=%d): %w", len(polys), idx, pointCount, ErrPolygonIndexOutOfRange)
			}
		}
		polys = append(polys, p)
		i += 1 + n
	}
	return polys, nil
}

func (d *Decoder) errorf(err error) error {
	return fmt.Errorf("vtk: line %d: %w", d.line, err)
}

// parseFloat also accepts Fortran style exponents such as "1.5D+03".
func parseFloat(tok string) (float64, error) {
	if strings.ContainsAny(tok, "dD") {
		tok = strings.NewReplacer("d", "e", "D", "e").Replace(tok)
	}
	return strconv.ParseFloat(tok, 64)
}

func startsNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.'
}

// isBinary reports whether a line carries bytes no text VTK file contains.
func isBinary(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 && c != '\t' || c == 0x7f {
			return true
		}
	}
	return false
}
