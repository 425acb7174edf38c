package builders

import (
	"errors"
	"reflect"
	"testing"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

func TestMetadataDecodeKeepsUndeclaredKeys(t *testing.T) {
	reg := newTestRegistry(t)

	rec := marshal.Record{
		"name":        "model-a",
		"version":     "v3",
		"description": "trained on august snapshot",
		"embedded":    true,
		"labels":      marshal.Record{"team": "ml"},
	}
	md, err := marshal.DecodeAs[*domain.EntityMetadata](reg, TagMetadata, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Name != "model-a" || md.Version != "v3" || !md.Embedded {
		t.Fatalf("declared fields not populated: %+v", md)
	}
	if _, ok := md.Extra.Get("labels"); !ok {
		t.Fatalf("undeclared key dropped")
	}

	back, err := marshal.EncodeRecord(reg, TagMetadata, md)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, rec)
	}
}

func TestMetadataRoundTripKeepsExplicitFalseEmbedded(t *testing.T) {
	reg := newTestRegistry(t)

	rec := marshal.Record{"name": "n", "embedded": false}
	md, err := marshal.DecodeAs[*domain.EntityMetadata](reg, TagMetadata, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := marshal.EncodeRecord(reg, TagMetadata, md)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, rec)
	}
}

func TestMetadataEncodeOmitsUnsetFields(t *testing.T) {
	reg := newTestRegistry(t)

	// assembled in code, no presence set: zero values render as absent
	back, err := marshal.EncodeRecord(reg, TagMetadata, &domain.EntityMetadata{Name: "n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := back["embedded"]; present {
		t.Fatalf("unset embedded must be omitted: %#v", back)
	}
	if _, present := back["version"]; present {
		t.Fatalf("unset version must be omitted: %#v", back)
	}
}

func TestEncodeMetadataPersistsExplicitFalseEmbedded(t *testing.T) {
	reg := newTestRegistry(t)

	blob, err := encodeMetadata(reg, marshal.Record{"name": "n", "embedded": false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, err := decodeBlob(reg, blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := stored["embedded"]
	if !ok {
		t.Fatalf("false marker lost from persisted form: %#v", stored)
	}
	if b, _ := v.(bool); b {
		t.Fatalf("expected embedded=false, got %#v", v)
	}
}

func TestEncodeMetadataRejectsMalformedRecord(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := encodeMetadata(reg, marshal.Record{"embedded": "yes"})
	var decodeErr *marshal.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Field != "embedded" {
		t.Fatalf("expected offending field recorded, got %q", decodeErr.Field)
	}
}
