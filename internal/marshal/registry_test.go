package marshal

import (
	"errors"
	"strings"
	"testing"
)

type upperCodec struct{}

func (upperCodec) Decode(src any) (any, error) {
	s, ok := src.(string)
	if !ok {
		return nil, &DecodeError{Err: errors.New("expected string")}
	}
	return strings.ToUpper(s), nil
}

func (upperCodec) Encode(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &EncodeError{Err: errors.New("expected string")}
	}
	return strings.ToLower(s), nil
}

func TestBuilderRejectsDuplicateTag(t *testing.T) {
	b := NewBuilder()
	if err := b.Register("upper", upperCodec{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Register("upper", upperCodec{}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegistryUnknownTag(t *testing.T) {
	reg := NewBuilder().Build()

	if _, err := reg.Decode("missing", "x"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := reg.Encode("missing", "x"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRegistryFillsErrorTag(t *testing.T) {
	b := NewBuilder()
	if err := b.Register("upper", upperCodec{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reg := b.Build()

	_, err := reg.Decode("upper", 42)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Tag != "upper" {
		t.Fatalf("expected tag filled in, got %q", decodeErr.Tag)
	}
}

func TestRegistryImmutableAfterBuild(t *testing.T) {
	b := NewBuilder()
	if err := b.Register("upper", upperCodec{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reg := b.Build()

	if err := b.Register("late", upperCodec{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.Decode("late", "x"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("built registry should not see later registrations, got %v", err)
	}
}

func TestDecodeAs(t *testing.T) {
	b := NewBuilder()
	if err := b.Register("upper", upperCodec{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reg := b.Build()

	out, err := DecodeAs[string](reg, "upper", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ABC" {
		t.Fatalf("expected ABC, got %q", out)
	}

	if _, err := DecodeAs[int](reg, "upper", "abc"); err == nil {
		t.Fatalf("expected type mismatch to fail")
	}
}
