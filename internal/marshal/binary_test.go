package marshal

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestBinaryCodecRoundTrip(t *testing.T) {
	codec, err := NewBinaryCodec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := Record{
		"name":   "model-a",
		"score":  0.92,
		"ready":  true,
		"labels": []any{"cv", "prod"},
		"nested": Record{"depth": float64(2), "note": nil},
	}

	out, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blob, ok := out.([]byte)
	if !ok || len(blob) == 0 {
		t.Fatalf("expected bytes, got %T", out)
	}

	back, err := codec.Decode(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, rec)
	}
}

func TestBinaryCodecDeterministicOutput(t *testing.T) {
	codec, err := NewBinaryCodec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := Record{"b": "2", "a": "1", "c": "3"}
	first, err := codec.Encode(CloneRecord(rec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first.([]byte), second.([]byte)) {
		t.Fatalf("canonical encoding should be stable")
	}
}

func TestBinaryCodecNilRecord(t *testing.T) {
	codec, err := NewBinaryCodec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := codec.Encode(Record(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blob := out.([]byte); len(blob) != 0 {
		t.Fatalf("expected empty blob, got %d bytes", len(blob))
	}

	back, err := codec.Decode([]byte(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec := back.(Record); rec != nil {
		t.Fatalf("expected nil record, got %v", rec)
	}
}

func TestBinaryCodecRejectsForeignValues(t *testing.T) {
	codec, err := NewBinaryCodec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = codec.Encode("not a record")
	var encodeErr *EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("expected EncodeError, got %v", err)
	}

	_, err = codec.Decode(Record{})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}
