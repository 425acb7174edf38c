package marshal

// Record is the generic exchange form: decoded wire payloads, the
// intermediate form between codecs, and extension contents all move through
// it. The alias keeps it assignable wherever a plain map is expected.
type Record = map[string]any

// CloneRecord returns a shallow copy of rec. A nil record clones to nil.
func CloneRecord(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
