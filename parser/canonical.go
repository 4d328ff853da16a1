package parser

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
)

// Canonical renders v as compact JSON with object keys sorted, so that two
// structurally equal values always produce the same string. It is total:
// values outside the model are normalized first and anything that still has
// no JSON form renders as null.
func Canonical(v any) string {
	if !isModel(v) {
		n, err := Normalize(v)
		if err != nil {
			return "null"
		}
		v = n
	}
	var buf bytes.Buffer
	writeCanonical(&buf, v)
	return buf.String()
}

func writeCanonical(buf *bytes.Buffer, v any) {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(x))
	case float64:
		// encoding/json formats floats the way ECMAScript does
		b, err := json.Marshal(x)
		if err != nil {
			buf.WriteString("null")
			return
		}
		buf.Write(b)
	case string:
		writeCanonicalString(buf, x)
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonical(buf, item)
		}
		buf.WriteByte(']')
	case *Object:
		keys := x.Keys()
		slices.Sort(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, k)
			buf.WriteByte(':')
			item, _ := x.Get(k)
			writeCanonical(buf, item)
		}
		buf.WriteByte('}')
	default:
		buf.WriteString(Canonical(x))
	}
}

func writeCanonicalString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		buf.WriteString(`""`)
		return
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
}
