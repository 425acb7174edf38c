package marshal

import (
	"errors"
	"fmt"
)

// Codec converts between the generic record form and one typed value. The
// forward direction (Decode) parses declared fields and captures the
// remainder; the reverse direction (Encode) must reproduce the record a
// Decode of the same tag consumed.
type Codec interface {
	Decode(src any) (any, error)
	Encode(value any) (any, error)
}

// CodecFuncs adapts a pair of functions into a Codec.
type CodecFuncs struct {
	DecodeFunc func(src any) (any, error)
	EncodeFunc func(value any) (any, error)
}

func (c CodecFuncs) Decode(src any) (any, error)   { return c.DecodeFunc(src) }
func (c CodecFuncs) Encode(value any) (any, error) { return c.EncodeFunc(value) }

// Builder assembles the codec table during process startup. Registering the
// same tag twice is a configuration error and fails immediately.
type Builder struct {
	codecs map[string]Codec
}

func NewBuilder() *Builder {
	return &Builder{codecs: map[string]Codec{}}
}

func (b *Builder) Register(tag string, codec Codec) error {
	if tag == "" {
		return errors.New("codec tag is required")
	}
	if codec == nil {
		return fmt.Errorf("codec for tag %q is required", tag)
	}
	if _, exists := b.codecs[tag]; exists {
		return fmt.Errorf("codec tag %q already registered", tag)
	}
	b.codecs[tag] = codec
	return nil
}

// Build seals the table. The returned registry owns a private copy, so later
// Builder use cannot mutate it; concurrent reads need no locking.
func (b *Builder) Build() *Registry {
	codecs := make(map[string]Codec, len(b.codecs))
	for tag, codec := range b.codecs {
		codecs[tag] = codec
	}
	return &Registry{codecs: codecs}
}

// Registry is the immutable tag-to-codec table. It is the single point of
// knowledge mapping a tag to its structural shape; callers never see format
// internals.
type Registry struct {
	codecs map[string]Codec
}

func (r *Registry) Decode(tag string, src any) (any, error) {
	codec, ok := r.codecs[tag]
	if !ok {
		return nil, fmt.Errorf("decode %q: %w", tag, ErrUnknownFormat)
	}
	out, err := codec.Decode(src)
	if err != nil {
		return nil, tagDecodeError(tag, err)
	}
	return out, nil
}

func (r *Registry) Encode(tag string, value any) (any, error) {
	codec, ok := r.codecs[tag]
	if !ok {
		return nil, fmt.Errorf("encode %q: %w", tag, ErrUnknownFormat)
	}
	out, err := codec.Encode(value)
	if err != nil {
		return nil, tagEncodeError(tag, err)
	}
	return out, nil
}

// DecodeAs decodes through the registry and asserts the produced type.
func DecodeAs[T any](r *Registry, tag string, src any) (T, error) {
	var zero T
	out, err := r.Decode(tag, src)
	if err != nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, &DecodeError{Tag: tag, Err: fmt.Errorf("codec produced %T, want %T", out, zero)}
	}
	return typed, nil
}

// EncodeRecord encodes through the registry and asserts a record result.
func EncodeRecord(r *Registry, tag string, value any) (Record, error) {
	out, err := r.Encode(tag, value)
	if err != nil {
		return nil, err
	}
	rec, ok := out.(Record)
	if !ok {
		return nil, &EncodeError{Tag: tag, Err: fmt.Errorf("codec produced %T, want a record", out)}
	}
	return rec, nil
}

// EncodeBytes encodes through the registry and asserts a binary result.
func EncodeBytes(r *Registry, tag string, value any) ([]byte, error) {
	out, err := r.Encode(tag, value)
	if err != nil {
		return nil, err
	}
	blob, ok := out.([]byte)
	if !ok {
		return nil, &EncodeError{Tag: tag, Err: fmt.Errorf("codec produced %T, want bytes", out)}
	}
	return blob, nil
}

func tagDecodeError(tag string, err error) error {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) && decodeErr.Tag == "" {
		decodeErr.Tag = tag
		return err
	}
	if decodeErr != nil {
		return err
	}
	return &DecodeError{Tag: tag, Err: err}
}

func tagEncodeError(tag string, err error) error {
	var encodeErr *EncodeError
	if errors.As(err, &encodeErr) && encodeErr.Tag == "" {
		encodeErr.Tag = tag
		return err
	}
	if encodeErr != nil {
		return err
	}
	return &EncodeError{Tag: tag, Err: err}
}
