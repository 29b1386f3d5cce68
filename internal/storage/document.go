package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// sequencesKey holds the last issued id per collection inside the persisted object.
const sequencesKey = "_sequences"

// Record is a single entry of a collection. Its identity is the "id" field.
type Record map[string]any

// ID returns the record identity in its canonical string form.
func (r Record) ID() string {
	return IDString(r["id"])
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

// Document is the entire persisted state: collection name to ordered records.
type Document struct {
	collections map[string][]Record
	sequences   map[string]int64
	// top-level values that are not arrays are kept untouched across writes
	extra map[string]json.RawMessage
}

func NewDocument() *Document {
	return &Document{
		collections: make(map[string][]Record),
		sequences:   make(map[string]int64),
		extra:       make(map[string]json.RawMessage),
	}
}

// Names returns the collection names in lexical order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.collections))
	for name := range d.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collection returns the records of name in insertion order.
// A missing collection is reported as empty.
func (d *Document) Collection(name string) []Record {
	return d.collections[name]
}

func (d *Document) SetCollection(name string, items []Record) {
	if items == nil {
		items = []Record{}
	}
	d.collections[name] = items
}

// Sequence returns the last id issued for name.
func (d *Document) Sequence(name string) int64 {
	return d.sequences[name]
}

func (d *Document) SetSequence(name string, value int64) {
	d.sequences[name] = value
}

// Sequences returns a copy of all counters.
func (d *Document) Sequences() map[string]int64 {
	out := make(map[string]int64, len(d.sequences))
	for k, v := range d.sequences {
		out[k] = v
	}
	return out
}

// NextID issues the next identifier for name. It never hands out an id that
// is already present or was issued before, even after deletes.
func (d *Document) NextID(name string) string {
	next := d.sequences[name]
	for _, rec := range d.collections[name] {
		if n, err := strconv.ParseInt(rec.ID(), 10, 64); err == nil && n > next {
			next = n
		}
	}
	next++
	d.sequences[name] = next
	return strconv.FormatInt(next, 10)
}

// Extras returns a copy of the top-level values that are not collections.
func (d *Document) Extras() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(d.extra))
	for k, v := range d.extra {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for name, items := range d.collections {
		copied := make([]Record, len(items))
		for i, rec := range items {
			copied[i] = rec.Clone()
		}
		out.collections[name] = copied
	}
	for k, v := range d.sequences {
		out.sequences[k] = v
	}
	for k, v := range d.extra {
		out.extra[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

func (d *Document) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(d.collections)+len(d.extra)+1)
	for k, v := range d.extra {
		obj[k] = v
	}
	for name, items := range d.collections {
		if items == nil {
			items = []Record{}
		}
		obj[name] = items
	}
	if len(d.sequences) > 0 {
		obj[sequencesKey] = d.sequences
	}
	return json.Marshal(obj)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("document must be a JSON object")
	}

	fresh := NewDocument()
	for key, value := range raw {
		if key == sequencesKey {
			if err := json.Unmarshal(value, &fresh.sequences); err != nil {
				return fmt.Errorf("decode %s: %w", sequencesKey, err)
			}
			if fresh.sequences == nil {
				fresh.sequences = make(map[string]int64)
			}
			continue
		}

		var items []Record
		if err := json.Unmarshal(value, &items); err != nil {
			fresh.extra[key] = value
			continue
		}
		if items == nil {
			items = []Record{}
		}
		for _, rec := range items {
			normalizeID(rec)
		}
		fresh.collections[key] = items
	}

	*d = *fresh
	return nil
}

// Assemble builds a Document from per-collection JSON arrays, the remaining
// top-level values and counters, the way row-oriented backends keep it.
func Assemble(collections, extras map[string]json.RawMessage, sequences map[string]int64) (*Document, error) {
	doc := NewDocument()
	for name, raw := range collections {
		var items []Record
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode collection %q: %w", name, err)
		}
		for _, rec := range items {
			normalizeID(rec)
		}
		doc.SetCollection(name, items)
	}
	for name, raw := range extras {
		if !json.Valid(raw) {
			return nil, fmt.Errorf("decode value %q: invalid JSON", name)
		}
		doc.extra[name] = append(json.RawMessage(nil), raw...)
	}
	for name, value := range sequences {
		doc.sequences[name] = value
	}
	return doc, nil
}

// IDString renders an identifier value in its canonical string form.
// Numeric identifiers from older files ("id": 3) become "3".
func IDString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		// int64 only holds integral values strictly inside ±2^63
		if id == math.Trunc(id) && math.Abs(id) < 1<<63 {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

func normalizeID(rec Record) {
	if rec == nil {
		return
	}
	if v, ok := rec["id"]; ok {
		rec["id"] = IDString(v)
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Record:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
