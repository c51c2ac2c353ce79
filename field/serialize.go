package field

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serialization layout: [default][count(uint32)][id(uint32) value]...
// Writing then reading back with the same codec yields a pointwise-equal
// field.

// Serialize writes the field to w using enc for each value.
func (f Field[T]) Serialize(w io.Writer, enc func(io.Writer, T) error) error {
	if err := enc(w, f.def); err != nil {
		return fmt.Errorf("write default: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(f.ids))); err != nil {
		return fmt.Errorf("write entry count: %w", err)
	}
	for i, d := range f.ids {
		if err := binary.Write(w, binary.LittleEndian, uint32(d)); err != nil {
			return fmt.Errorf("write id %d: %w", d, err)
		}
		if err := enc(w, f.vals[i]); err != nil {
			return fmt.Errorf("write value for id %d: %w", d, err)
		}
	}
	return nil
}

// Deserialize reads a field from r using dec for each value.
func Deserialize[T any](r io.Reader, dec func(io.Reader) (T, error)) (Field[T], error) {
	var f Field[T]
	def, err := dec(r)
	if err != nil {
		return f, fmt.Errorf("read default: %w", err)
	}
	f.def = def
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return f, fmt.Errorf("read entry count: %w", err)
	}
	for i := uint32(0); i < n; i++ {
		var id uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return f, fmt.Errorf("read id %d: %w", i, err)
		}
		v, err := dec(r)
		if err != nil {
			return f, fmt.Errorf("read value %d: %w", i, err)
		}
		f.ids = append(f.ids, Device(id))
		f.vals = append(f.vals, v)
	}
	return f, nil
}
