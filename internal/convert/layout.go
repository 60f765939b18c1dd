package convert

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedPattern is returned for date patterns that have no Go
// layout equivalent.
var ErrUnsupportedPattern = errors.New("unsupported date pattern")

// Layout translates a date pattern written with SimpleDateFormat letters
// (yyyy-MM-dd HH:mm) into a Go reference layout (2006-01-02 15:04).
//
// H and HH both become 15. Go has no unpadded 24-hour element, so hours
// before ten are written with a leading zero; parsing accepts both forms.
//
// Patterns whose elements would run together into different Go elements,
// like Ms becoming 15, are rejected.
func Layout(pattern string) (string, error) {
	if pattern == "" {
		return "", errors.Wrap(ErrUnsupportedPattern, "empty pattern")
	}

	var (
		out   strings.Builder
		elems []string
	)
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case r == '\'':
			lit, next, err := quoted(runes, i)
			if err != nil {
				return "", err
			}
			if err := writeLiteral(&out, lit); err != nil {
				return "", err
			}
			i = next

		case isLetter(r):
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}
			prev := out.String()
			elem, err := element(r, n, prev)
			if err != nil {
				return "", err
			}
			if r == 'S' {
				elems = append(elems, prev[len(prev)-1:]+elem)
			} else {
				elems = append(elems, elem)
			}
			out.WriteString(elem)
			i += n

		default:
			j := i
			for j < len(runes) && runes[j] != '\'' && !isLetter(runes[j]) {
				j++
			}
			if err := writeLiteral(&out, string(runes[i:j])); err != nil {
				return "", err
			}
			i = j
		}
	}
	layout := out.String()
	if !slices.Equal(stdChunks(layout), elems) {
		return "", errors.Wrapf(ErrUnsupportedPattern, "%q reads back as %q", pattern, layout)
	}
	return layout, nil
}

// quoted reads a 'quoted' literal starting at runes[start]. Two adjacent
// quotes stand for one quote character.
func quoted(runes []rune, start int) (string, int, error) {
	if start+1 < len(runes) && runes[start+1] == '\'' {
		return "'", start + 2, nil
	}

	var lit strings.Builder
	for i := start + 1; i < len(runes); i++ {
		if runes[i] != '\'' {
			lit.WriteRune(runes[i])
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '\'' {
			lit.WriteRune('\'')
			i++
			continue
		}
		return lit.String(), i + 1, nil
	}
	return "", 0, errors.Wrap(ErrUnsupportedPattern, "unterminated quote")
}

// writeLiteral rejects digits and underscores, which would either merge
// into a neighbouring number or start a Go element of their own.
func writeLiteral(out *strings.Builder, lit string) error {
	if strings.ContainsAny(lit, "0123456789_") {
		return errors.Wrapf(ErrUnsupportedPattern, "literal %q", lit)
	}
	out.WriteString(lit)
	return nil
}

func element(letter rune, n int, prev string) (string, error) {
	switch letter {
	case 'y':
		if n == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M':
		switch n {
		case 1:
			return "1", nil
		case 2:
			return "01", nil
		case 3:
			return "Jan", nil
		}
		return "January", nil
	case 'd':
		return pad(n, "2", "02"), nil
	case 'D':
		if n == 3 {
			return "002", nil
		}
	case 'H':
		return "15", nil
	case 'h':
		return pad(n, "3", "03"), nil
	case 'm':
		return pad(n, "4", "04"), nil
	case 's':
		return pad(n, "5", "05"), nil
	case 'S':
		// Go only reads fractional seconds after a separator.
		if strings.HasSuffix(prev, ".") || strings.HasSuffix(prev, ",") {
			return strings.Repeat("0", n), nil
		}
	case 'a':
		return "PM", nil
	case 'E':
		if n >= 4 {
			return "Monday", nil
		}
		return "Mon", nil
	case 'z':
		return "MST", nil
	case 'Z':
		return "-0700", nil
	case 'X':
		switch n {
		case 1:
			return "Z07", nil
		case 2:
			return "Z0700", nil
		}
		return "Z07:00", nil
	}
	return "", errors.Wrapf(ErrUnsupportedPattern, "%q", strings.Repeat(string(letter), n))
}

func pad(n int, short, long string) string {
	if n >= 2 {
		return long
	}
	return short
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// stdChunks returns the elements of a Go layout in order, split the way
// the time package reads them. Literal text is left out.
func stdChunks(layout string) []string {
	var chunks []string
	for i := 0; i < len(layout); {
		if n := stdLen(layout[i:]); n > 0 {
			chunks = append(chunks, layout[i:i+n])
			i += n
			continue
		}
		i++
	}
	return chunks
}

// stdLen is the length of the Go layout element at the start of s, or 0
// when s starts with literal text.
func stdLen(s string) int {
	switch s[0] {
	case 'J':
		if strings.HasPrefix(s, "January") {
			return 7
		}
		if strings.HasPrefix(s, "Jan") && !startsWithLower(s[3:]) {
			return 3
		}
	case 'M':
		if strings.HasPrefix(s, "Monday") {
			return 6
		}
		if strings.HasPrefix(s, "Mon") && !startsWithLower(s[3:]) {
			return 3
		}
		if strings.HasPrefix(s, "MST") {
			return 3
		}
	case '0':
		if len(s) >= 2 && '1' <= s[1] && s[1] <= '6' {
			return 2
		}
		if strings.HasPrefix(s, "002") {
			return 3
		}
	case '1':
		if strings.HasPrefix(s, "15") {
			return 2
		}
		return 1
	case '2':
		if strings.HasPrefix(s, "2006") {
			return 4
		}
		return 1
	case '_':
		// _2006 is a literal underscore followed by the year.
		if strings.HasPrefix(s, "_2") && !strings.HasPrefix(s, "_2006") {
			return 2
		}
		if strings.HasPrefix(s, "__2") {
			return 3
		}
	case '3', '4', '5':
		return 1
	case 'P':
		if strings.HasPrefix(s, "PM") {
			return 2
		}
	case 'p':
		if strings.HasPrefix(s, "pm") {
			return 2
		}
	case '-', 'Z':
		for _, zone := range []string{"070000", "07:00:00", "0700", "07:00", "07"} {
			if strings.HasPrefix(s[1:], zone) {
				return 1 + len(zone)
			}
		}
	case '.', ',':
		if len(s) >= 2 && (s[1] == '0' || s[1] == '9') {
			j := 1
			for j < len(s) && s[j] == s[1] {
				j++
			}
			if j == len(s) || s[j] < '0' || s[j] > '9' {
				return j
			}
		}
	}
	return 0
}

func startsWithLower(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}
