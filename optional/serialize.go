package optional

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serialization layout follows the mode: ModeEmpty writes nothing, ModeFull
// writes the payload, ModeRuntime writes a presence byte and then the payload
// if present. Writing then reading back with the same mode and codec yields
// an equal option.

// EncodeFunc writes one payload value to a stream.
type EncodeFunc[T any] func(w io.Writer, v T) error

// DecodeFunc reads one payload value from a stream.
type DecodeFunc[T any] func(r io.Reader) (T, error)

// BinaryEncode encodes any fixed-size value with encoding/binary.
func BinaryEncode[T any](w io.Writer, v T) error {
	return binary.Write(w, binary.LittleEndian, v)
}

// BinaryDecode decodes any fixed-size value with encoding/binary.
func BinaryDecode[T any](r io.Reader) (T, error) {
	var v T
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// Serialize writes the option to w using enc for the payload.
func (o Option[T]) Serialize(w io.Writer, enc EncodeFunc[T]) error {
	switch o.mode {
	case ModeEmpty:
		return nil
	case ModeFull:
		return enc(w, o.data)
	default:
		var flag byte
		if o.some {
			flag = 1
		}
		if _, err := w.Write([]byte{flag}); err != nil {
			return fmt.Errorf("write presence flag: %w", err)
		}
		if !o.some {
			return nil
		}
		return enc(w, o.data)
	}
}

// Deserialize reads an option of the given mode from r using dec for the
// payload.
func Deserialize[T any](r io.Reader, mode Mode, dec DecodeFunc[T]) (Option[T], error) {
	o := Empty[T](mode)
	switch mode {
	case ModeEmpty:
		return o, nil
	case ModeFull:
		v, err := dec(r)
		if err != nil {
			return o, fmt.Errorf("read payload: %w", err)
		}
		o.Set(v)
		return o, nil
	default:
		var flag [1]byte
		if _, err := io.ReadFull(r, flag[:]); err != nil {
			return o, fmt.Errorf("read presence flag: %w", err)
		}
		if flag[0] == 0 {
			return o, nil
		}
		v, err := dec(r)
		if err != nil {
			return o, fmt.Errorf("read payload: %w", err)
		}
		o.Set(v)
		return o, nil
	}
}
