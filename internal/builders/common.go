package builders

import (
	"time"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// The put helpers skip unset fields but keep zero values that were
// explicitly present in the decoded input, so "" and false round-trip
// instead of vanishing. DTOs assembled in code carry no presence set and
// encode zero values as absent, matching the original's non-null rendering.
func putString(rec marshal.Record, p marshal.Presence, key, value string) {
	if value != "" || p.Has(key) {
		rec[key] = value
	}
}

func putBool(rec marshal.Record, p marshal.Presence, key string, value bool) {
	if value || p.Has(key) {
		rec[key] = value
	}
}

func putRecord(rec marshal.Record, key string, value marshal.Record) {
	if value != nil {
		rec[key] = value
	}
}

func putTime(rec marshal.Record, p marshal.Presence, key string, value time.Time) {
	if !value.IsZero() || p.Has(key) {
		rec[key] = value
	}
}

func encodeBlob(reg *marshal.Registry, rec marshal.Record) ([]byte, error) {
	return marshal.EncodeBytes(reg, TagBinary, rec)
}

func decodeBlob(reg *marshal.Registry, blob []byte) (marshal.Record, error) {
	return marshal.DecodeAs[marshal.Record](reg, TagBinary, blob)
}

// encodeMetadata round-trips the record through the typed metadata codec so
// malformed declared fields fail before anything is persisted, then encodes
// the validated record into blob form.
func encodeMetadata(reg *marshal.Registry, rec marshal.Record) ([]byte, error) {
	if rec == nil {
		return nil, nil
	}
	meta, err := marshal.DecodeAs[*domain.EntityMetadata](reg, TagMetadata, rec)
	if err != nil {
		return nil, err
	}
	validated, err := marshal.EncodeRecord(reg, TagMetadata, meta)
	if err != nil {
		return nil, err
	}
	return encodeBlob(reg, validated)
}

func encodeExtension(reg *marshal.Registry, ext *marshal.Extension) ([]byte, error) {
	if ext.Len() == 0 {
		return nil, nil
	}
	return encodeBlob(reg, ext.Export())
}

func decodeExtension(reg *marshal.Registry, blob []byte) (*marshal.Extension, error) {
	rec, err := decodeBlob(reg, blob)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return marshal.ExtensionFromRecord(rec), nil
}
