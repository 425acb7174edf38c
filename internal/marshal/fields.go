package marshal

import (
	"fmt"
	"sort"
	"time"
)

// Fields reads declared fields off a record, tracking which keys it claimed
// so the remainder can be captured afterwards. The first type mismatch is
// remembered and surfaced by Err; callers must check it before Rest, so a
// malformed declared field is never swallowed into the extension set.
type Fields struct {
	rec     Record
	claimed map[string]bool
	present Presence
	err     error
}

func NewFields(rec Record) *Fields {
	return &Fields{rec: rec, claimed: map[string]bool{}, present: Presence{}}
}

// Presence records which declared keys carried a non-null value in the
// source record. Encoders consult it so an explicit zero value ("" or
// false) survives a decode/encode round trip instead of being dropped as
// unset. A nil Presence reports every key absent.
type Presence map[string]bool

func (p Presence) Has(key string) bool { return p[key] }

// AsRecord coerces a codec source value into a record. Nil decodes as an
// empty record.
func AsRecord(src any) (Record, error) {
	switch v := src.(type) {
	case nil:
		return Record{}, nil
	case Record:
		return v, nil
	default:
		return nil, &DecodeError{Err: fmt.Errorf("expected a record, got %T", src)}
	}
}

func (f *Fields) String(key string) string {
	v, ok := f.claim(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.fail(key, fmt.Errorf("expected string, got %T", v))
		return ""
	}
	return s
}

func (f *Fields) Bool(key string) bool {
	v, ok := f.claim(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		f.fail(key, fmt.Errorf("expected bool, got %T", v))
		return false
	}
	return b
}

// BoolPtr distinguishes an absent flag from an explicit false.
func (f *Fields) BoolPtr(key string) *bool {
	v, ok := f.claim(key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		f.fail(key, fmt.Errorf("expected bool, got %T", v))
		return nil
	}
	return &b
}

// Time accepts either a time value or an RFC 3339 string.
func (f *Fields) Time(key string) time.Time {
	v, ok := f.claim(key)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			f.fail(key, fmt.Errorf("expected RFC 3339 timestamp: %w", err))
			return time.Time{}
		}
		return parsed
	default:
		f.fail(key, fmt.Errorf("expected timestamp, got %T", v))
		return time.Time{}
	}
}

// Record reads a nested record field.
func (f *Fields) Record(key string) Record {
	v, ok := f.claim(key)
	if !ok {
		return nil
	}
	rec, ok := v.(Record)
	if !ok {
		f.fail(key, fmt.Errorf("expected object, got %T", v))
		return nil
	}
	return rec
}

// Claim marks keys as declared without reading them, keeping response-only
// fields out of the extension set.
func (f *Fields) Claim(keys ...string) {
	for _, key := range keys {
		f.claimed[key] = true
	}
}

func (f *Fields) Err() error { return f.err }

// Present reports the declared keys that carried non-null values.
func (f *Fields) Present() Presence { return f.present }

// Rest captures every unclaimed key as the extension remainder. The source
// record is an unordered map, so capture runs in sorted key order to keep
// output deterministic.
func (f *Fields) Rest() *Extension {
	keys := make([]string, 0, len(f.rec))
	for k := range f.rec {
		if f.claimed[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ext := NewExtension()
	for _, k := range keys {
		ext.Put(k, f.rec[k])
	}
	return ext
}

// claim marks the key as declared and reports whether a non-null value is
// present. A JSON null is treated as absent.
func (f *Fields) claim(key string) (any, bool) {
	f.claimed[key] = true
	v, ok := f.rec[key]
	if !ok || v == nil {
		return nil, false
	}
	f.present[key] = true
	return v, true
}

func (f *Fields) fail(key string, err error) {
	if f.err != nil {
		return
	}
	f.err = &DecodeError{Field: key, Err: err}
}
