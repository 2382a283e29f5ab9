package vtk

import "strings"

// LineKind is the grammatical class of one line of a legacy VTK file.
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineComment
	LineKeyword
	LineNumeric
)

func (k LineKind) String() string {
	switch k {
	case LineComment:
		return "comment"
	case LineKeyword:
		return "keyword"
	case LineNumeric:
		return "numeric"
	}
	return "unrecognized"
}

// Classify trims surrounding whitespace from line and reports its kind
// together with the trimmed text.
//
// Numeric is tested before keyword: a line of bare integers such as "4 0 1 2"
// is also a valid run of keyword tokens.
func Classify(line string) (LineKind, string) {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return LineUnrecognized, s
	case s[0] == '#':
		return LineComment, s
	case isNumeric(s):
		return LineNumeric, s
	case isKeyword(s):
		return LineKeyword, s
	}
	return LineUnrecognized, s
}

// isNumeric accepts digits, '.', '-', '+', whitespace and the exponent
// letters d/D/e/E. '+' covers exponents like "1e+03" as printed by %g. At least one digit is required so words like "deed" stay keywords.
func isNumeric(s string) bool {
	digit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digit = true
		case c == '.', c == '-', c == '+', c == ' ', c == '\t', c == '\v', c == '\f', c == '\r':
		case c == 'd', c == 'D', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return digit
}

// isKeyword accepts tokens of ASCII letters, digits and underscores separated
// by single spaces.
func isKeyword(s string) bool {
	prevSpace := true // no leading space allowed
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			if prevSpace {
				return false
			}
			prevSpace = true
			continue
		}
		if !isWordByte(c) {
			return false
		}
		prevSpace = false
	}
	return !prevSpace
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
