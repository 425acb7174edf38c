package marshal

import "sort"

// Extension carries the key/value pairs of a record that no declared field of
// its owning spec claimed. Both capture paths (ExtensionFromRecord and
// Fields.Rest) insert keys in sorted order, and that order is stable through
// Put and Export, so re-encoded output is deterministic across runs.
type Extension struct {
	keys   []string
	values map[string]any
}

func NewExtension() *Extension {
	return &Extension{values: map[string]any{}}
}

// ExtensionFromRecord captures every key of rec, in sorted key order.
func ExtensionFromRecord(rec Record) *Extension {
	ext := NewExtension()
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ext.Put(k, rec[k])
	}
	return ext
}

// Put inserts or overwrites a carried value. Last write wins.
func (e *Extension) Put(key string, value any) {
	if e.values == nil {
		e.values = map[string]any{}
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *Extension) Get(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e.values[key]
	return v, ok
}

func (e *Extension) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Keys returns the carried keys in insertion order.
func (e *Extension) Keys() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// MergeInto writes every carried pair into rec without overwriting keys
// already present: declared fields take precedence over carried ones.
func (e *Extension) MergeInto(rec Record) {
	if e == nil || rec == nil {
		return
	}
	for _, k := range e.keys {
		if _, exists := rec[k]; exists {
			continue
		}
		rec[k] = e.values[k]
	}
}

// Export returns the carried pairs as a fresh record.
func (e *Extension) Export() Record {
	if e == nil {
		return Record{}
	}
	out := make(Record, len(e.keys))
	for _, k := range e.keys {
		out[k] = e.values[k]
	}
	return out
}
