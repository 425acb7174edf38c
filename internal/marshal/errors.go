package marshal

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat reports a codec tag that was never registered. Hitting it
// outside startup is a programming error, not a runtime condition.
var ErrUnknownFormat = errors.New("unknown format tag")

// DecodeError reports a declared field whose source value cannot be coerced
// to the field's declared type. Unknown keys never raise it; they are
// carried by the extension instead.
type DecodeError struct {
	Tag   string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Tag != "" && e.Field != "":
		return fmt.Sprintf("decode %q: field %q: %v", e.Tag, e.Field, e.Err)
	case e.Tag != "":
		return fmt.Sprintf("decode %q: %v", e.Tag, e.Err)
	case e.Field != "":
		return fmt.Sprintf("decode field %q: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("decode: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a value handed to an encoder that was not produced by
// the matching decoder.
type EncodeError struct {
	Tag string
	Err error
}

func (e *EncodeError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("encode %q: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("encode: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
