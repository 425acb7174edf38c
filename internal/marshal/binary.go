package marshal

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// BinaryCodec is the codec behind the persisted-blob tag. Encode renders a
// record as canonical CBOR, so equal records always produce identical bytes;
// Decode reconstructs the record. A nil record encodes to an empty blob and
// back.
type BinaryCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewBinaryCodec() (*BinaryCodec, error) {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encode mode: %w", err)
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("cbor decode mode: %w", err)
	}
	return &BinaryCodec{enc: enc, dec: dec}, nil
}

func (c *BinaryCodec) Encode(value any) (any, error) {
	rec, ok := value.(Record)
	if !ok && value != nil {
		return nil, &EncodeError{Err: fmt.Errorf("expected a record, got %T", value)}
	}
	if rec == nil {
		return []byte(nil), nil
	}
	blob, err := c.enc.Marshal(rec)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return blob, nil
}

func (c *BinaryCodec) Decode(src any) (any, error) {
	blob, ok := src.([]byte)
	if !ok && src != nil {
		return nil, &DecodeError{Err: fmt.Errorf("expected bytes, got %T", src)}
	}
	if len(blob) == 0 {
		return Record(nil), nil
	}
	var rec Record
	if err := c.dec.Unmarshal(blob, &rec); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return rec, nil
}
