package alsatlv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLength is returned when a buffer is shorter than the minimum required for the
	// structure being decoded.
	ErrInvalidLength = errors.New("insufficient length of data")

	// ErrInvalidType is returned when the type field does not match any type the decoder
	// recognizes at that position.
	ErrInvalidType = errors.New("invalid value in type field")

	// ErrTruncatedData is returned when a length field declares more value words than the
	// buffer actually holds.
	ErrTruncatedData = errors.New("invalid value in length field")
)

// DecodeError describes a structural violation found while decoding TLV data. Offset is the
// word offset from the beginning of the outermost buffer handed to the decoder; for entries of
// a dB range it is relative to the beginning of the entry. It unwraps to one of the sentinel
// errors above, so callers can classify failures with errors.Is.
type DecodeError struct {
	Offset int
	Err    error

	detail string
}

// Error returns the failure description together with the word offset.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s, at word %d", e.Err, e.detail, e.Offset)
}

// Unwrap returns the sentinel error classifying this failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newDecodeError reports a short buffer (ErrInvalidLength) or an overlong length field
// (ErrTruncatedData) at the given word offset.
func newDecodeError(offset, actual, expected int, sentinel error) *DecodeError {
	var detail string
	if sentinel == ErrTruncatedData {
		detail = fmt.Sprintf("declared %d words, only %d available", expected, actual)
	} else {
		detail = fmt.Sprintf("%d words, need at least %d", actual, expected)
	}

	return &DecodeError{Offset: offset, Err: sentinel, detail: detail}
}

// newExactLengthError reports a length field that does not declare the fixed size required by
// the record type.
func newExactLengthError(offset, declared, expected int) *DecodeError {
	detail := fmt.Sprintf("declared %d words, need exactly %d", declared, expected)

	return &DecodeError{Offset: offset, Err: ErrTruncatedData, detail: detail}
}

// newTypeError reports an unexpected type tag at the given word offset.
func newTypeError(offset int, got uint32, want ...uint32) *DecodeError {
	allowed := make([]string, len(want))
	for i, t := range want {
		allowed[i] = fmt.Sprintf("%d", t)
	}

	detail := fmt.Sprintf("got %d, expected %s", got, strings.Join(allowed, ", "))

	return &DecodeError{Offset: offset, Err: ErrInvalidType, detail: detail}
}

// nestError re-bases a failure from a nested decode so that the reported offset counts from
// the beginning of the enclosing buffer.
func nestError(err error, offset int) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{Offset: de.Offset + offset, Err: de.Err, detail: de.detail}
	}

	return err
}
