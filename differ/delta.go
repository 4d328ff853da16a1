package differ

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
)

// Delta is one node of a diff tree. The concrete types are *Added, *Deleted,
// *Modified, *Moved, *ObjectDelta and *ArrayDelta. A nil Delta means the two
// values are equal.
//
// Every Delta marshals to the jsondiffpatch wire form.
type Delta interface {
	json.Marshaler
	delta()
}

// Added is a value present only in the new document.
type Added struct {
	Value any
}

// Deleted is a value present only in the old document.
type Deleted struct {
	Value any
}

// Modified is a value present in both documents with a different content.
// Containers of the same kind never produce Modified; they produce a nested delta.
type Modified struct {
	Old any
	New any
}

// Moved records an array element that now lives at index To of the new array.
// The element's own changes, if any, are reported at the destination key.
type Moved struct {
	To int
}

// Field is one entry of an ObjectDelta.
type Field struct {
	Name  string
	Delta Delta
}

// ObjectDelta holds the changed members of an object, in union order: the old
// object's keys in order, then the keys only the new object has.
type ObjectDelta struct {
	Fields []Field
}

// ArrayKey addresses an array entry. Old keys index the old array and are
// written "_N"; the others index the new array and are written "N".
type ArrayKey struct {
	Index int
	Old   bool
}

// ArrayEntry is one entry of an ArrayDelta.
type ArrayEntry struct {
	Key   ArrayKey
	Delta Delta
}

// ArrayDelta holds the changed positions of an array. Entries are ordered
// new-array keys ascending, then old-array keys ascending.
type ArrayDelta struct {
	Entries []ArrayEntry
}

func (*Added) delta()       {}
func (*Deleted) delta()     {}
func (*Modified) delta()    {}
func (*Moved) delta()       {}
func (*ObjectDelta) delta() {}
func (*ArrayDelta) delta()  {}

// moveMarker is the third element of a moved leaf in the wire form.
const moveMarker = 3

// MarshalJSON encodes the added leaf as [value].
func (d *Added) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Value})
}

// MarshalJSON encodes the deleted leaf as [value, 0, 0].
func (d *Deleted) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Value, 0, 0})
}

// MarshalJSON encodes the modified leaf as [old, new].
func (d *Modified) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Old, d.New})
}

// MarshalJSON encodes the moved leaf as ["", to, 3].
func (d *Moved) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"", d.To, moveMarker})
}

// MarshalJSON encodes the object delta with its fields in order.
func (d *ObjectDelta) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, f.Name, f.Delta); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the array delta as {"_t": "a", ...}.
func (d *ArrayDelta) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"_t":"a"`)
	for _, e := range d.Entries {
		buf.WriteByte(',')
		if err := writeMember(&buf, e.Key.String(), e.Delta); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, child Delta) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	if child == nil {
		buf.WriteString("null")
		return nil
	}
	value, err := child.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(value)
	return nil
}

// Get returns the delta of the named field.
func (d *ObjectDelta) Get(name string) (Delta, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Delta, true
		}
	}
	return nil, false
}

// Len returns the number of changed fields.
func (d *ObjectDelta) Len() int {
	return len(d.Fields)
}

// Get returns the delta stored under key.
func (d *ArrayDelta) Get(key ArrayKey) (Delta, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e.Delta, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (d *ArrayDelta) Len() int {
	return len(d.Entries)
}

func (d *ArrayDelta) add(key ArrayKey, child Delta) {
	d.Entries = append(d.Entries, ArrayEntry{Key: key, Delta: child})
}

// sort puts new-array keys first, each group ascending by index.
func (d *ArrayDelta) sort() {
	slices.SortStableFunc(d.Entries, func(a, b ArrayEntry) int {
		if a.Key.Old != b.Key.Old {
			if a.Key.Old {
				return 1
			}
			return -1
		}
		return a.Key.Index - b.Key.Index
	})
}

// NewKey addresses index i of the new array.
func NewKey(i int) ArrayKey { return ArrayKey{Index: i} }

// OldKey addresses index i of the old array.
func OldKey(i int) ArrayKey { return ArrayKey{Index: i, Old: true} }

// String returns the wire form of the key: "N" or "_N".
func (k ArrayKey) String() string {
	if k.Old {
		return "_" + strconv.Itoa(k.Index)
	}
	return strconv.Itoa(k.Index)
}

// ParseArrayKey parses "N" or "_N". It reports false for "_t" and anything
// that is not a non-negative decimal index.
func ParseArrayKey(s string) (ArrayKey, bool) {
	var k ArrayKey
	if len(s) > 1 && s[0] == '_' {
		k.Old = true
		s = s[1:]
	}
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return ArrayKey{}, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return ArrayKey{}, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ArrayKey{}, false
	}
	k.Index = n
	return k, true
}
