package valerror

import (
	"strconv"
	"strings"
)

// FieldPath renders loc as a dot-and-bracket field path.
//
//	body, user, email            -> user.email
//	body, addresses, 0, zip_code -> addresses[0].zip_code
//	body, 0                      -> [0]
//	query, q                     -> query.q
//
// Only a leading [BodyRoot] segment is dropped; a location holding nothing
// else renders as "".
func FieldPath(loc Location) string {
	if len(loc) > 0 && !loc[0].isIndex && loc[0].name == BodyRoot {
		loc = loc[1:]
	}

	var b strings.Builder
	for _, seg := range loc {
		if seg.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.name)
	}
	return b.String()
}
