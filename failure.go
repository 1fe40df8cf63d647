package valerror

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// BodyRoot is the leading location segment that stands for the whole request
// body. [FieldPath] drops it so the first visible segment is a top-level field.
const BodyRoot = "body"

type (
	// Segment is one step of a [Location]: a field name or a list index.
	Segment struct {
		name    string
		index   int
		isIndex bool
	}

	// Location addresses a value inside a request, outermost segment first.
	Location []Segment

	// Failure is a single validation problem reported by the host.
	Failure struct {
		Location Location
		Message  string
		// Type is the failure category, e.g. "type_error.integer".
		Type string
	}
)

// Name returns a field name segment.
func Name(name string) Segment {
	return Segment{name: name}
}

// Index returns a list index segment. Negative indexes are kept as names
// since they cannot address a list element.
func Index(i int) Segment {
	if i < 0 {
		return Segment{name: strconv.Itoa(i)}
	}
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether s is a list index.
func (s Segment) IsIndex() bool { return s.isIndex }

// Name returns the field name, or "" for an index segment.
func (s Segment) Name() string { return s.name }

// Index returns the list index, or -1 for a name segment.
func (s Segment) Index() int {
	if !s.isIndex {
		return -1
	}
	return s.index
}

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.name
}

// MarshalJSON encodes an index as a number and a name as a string.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.isIndex {
		return json.Marshal(s.index)
	}
	return json.Marshal(s.name)
}

// Loc builds a Location from strings, ints and Segments. Any other value is
// formatted with %v and used as a name.
func Loc(parts ...any) Location {
	loc := make(Location, 0, len(parts))
	for _, p := range parts {
		switch p := p.(type) {
		case Segment:
			loc = append(loc, p)
		case string:
			loc = append(loc, Name(p))
		case int:
			loc = append(loc, Index(p))
		default:
			loc = append(loc, Name(fmt.Sprintf("%v", p)))
		}
	}
	return loc
}

// Append returns a new Location with segs added after l. The receiver is
// never modified.
func (l Location) Append(segs ...Segment) Location {
	out := make(Location, 0, len(l)+len(segs))
	out = append(out, l...)
	return append(out, segs...)
}

func (l Location) String() string {
	return FieldPath(l)
}
