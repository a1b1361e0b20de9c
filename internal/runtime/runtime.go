// Package runtime is a minimal reference implementation of the interface
// the emitted decoder links against (spec.md §1's "runtime library the
// emitted code links against", explicitly out of scope for the core but
// needed so generated code type-checks against something concrete).
// Grounded in original_source/crates/ddl/src/rust/emit.rs's references to
// ddl_rt::{Binary, ReadBinary, ReadCtxt, ReadError, U8, U16Le, ...}: this
// package is the Go-shaped analog of that ddl_rt crate, not a production
// decoding runtime (SPEC_FULL.md §4).
package runtime

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ReadError is returned by a Read method that ran out of input or hit a
// value the format doesn't accept.
type ReadError struct {
	Offset int
	Reason string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error at offset %d: %s", e.Offset, e.Reason)
}

// ReadCtxt is the cursor a reader procedure advances as it consumes bytes,
// mirroring ddl_rt::ReadCtxt's role as the sole piece of mutable state
// threaded through a struct's field-by-field read.
type ReadCtxt struct {
	Data   []byte
	Offset int
}

// NewReadCtxt creates a cursor over data starting at offset 0.
func NewReadCtxt(data []byte) *ReadCtxt {
	return &ReadCtxt{Data: data}
}

func (c *ReadCtxt) take(n int) ([]byte, error) {
	if c.Offset+n > len(c.Data) {
		return nil, &ReadError{Offset: c.Offset, Reason: "unexpected end of input"}
	}
	b := c.Data[c.Offset : c.Offset+n]
	c.Offset += n
	return b, nil
}

// Binary marks a type as a binary format descriptor whose decoded values
// have Go type Host (spec.md §6: "this type is a binary format with
// host = itself" for every emitted struct).
type Binary interface {
	Marker()
}

// ReadBinary is implemented by a format descriptor to decode one value of
// type Host from ctxt, short-circuiting on the first field that fails
// (spec.md §4.E's struct reader contract).
type ReadBinary[Host any] interface {
	Binary
	Read(ctxt *ReadCtxt) (Host, error)
}

// Primitive format descriptors. Each is a zero-size marker type whose
// Read method decodes exactly the bytes its name promises; struct field
// readers invoke these by name (spec.md §4.E's lowering table).

type U8 struct{}
type I8 struct{}
type U16Le struct{}
type U16Be struct{}
type U32Le struct{}
type U32Be struct{}
type U64Le struct{}
type U64Be struct{}
type I16Le struct{}
type I16Be struct{}
type I32Le struct{}
type I32Be struct{}
type I64Le struct{}
type I64Be struct{}
type F32Le struct{}
type F32Be struct{}
type F64Le struct{}
type F64Be struct{}

func (U8) Marker()    {}
func (I8) Marker()    {}
func (U16Le) Marker() {}
func (U16Be) Marker() {}
func (U32Le) Marker() {}
func (U32Be) Marker() {}
func (U64Le) Marker() {}
func (U64Be) Marker() {}
func (I16Le) Marker() {}
func (I16Be) Marker() {}
func (I32Le) Marker() {}
func (I32Be) Marker() {}
func (I64Le) Marker() {}
func (I64Be) Marker() {}
func (F32Le) Marker() {}
func (F32Be) Marker() {}
func (F64Le) Marker() {}
func (F64Be) Marker() {}

func (U8) Read(ctxt *ReadCtxt) (uint8, error) {
	b, err := ctxt.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (I8) Read(ctxt *ReadCtxt) (int8, error) {
	b, err := ctxt.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (U16Le) Read(ctxt *ReadCtxt) (uint16, error) {
	b, err := ctxt.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (U16Be) Read(ctxt *ReadCtxt) (uint16, error) {
	b, err := ctxt.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (U32Le) Read(ctxt *ReadCtxt) (uint32, error) {
	b, err := ctxt.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (U32Be) Read(ctxt *ReadCtxt) (uint32, error) {
	b, err := ctxt.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (U64Le) Read(ctxt *ReadCtxt) (uint64, error) {
	b, err := ctxt.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (U64Be) Read(ctxt *ReadCtxt) (uint64, error) {
	b, err := ctxt.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (I16Le) Read(ctxt *ReadCtxt) (int16, error) {
	v, err := (U16Le{}).Read(ctxt)
	return int16(v), err
}

func (I16Be) Read(ctxt *ReadCtxt) (int16, error) {
	v, err := (U16Be{}).Read(ctxt)
	return int16(v), err
}

func (I32Le) Read(ctxt *ReadCtxt) (int32, error) {
	v, err := (U32Le{}).Read(ctxt)
	return int32(v), err
}

func (I32Be) Read(ctxt *ReadCtxt) (int32, error) {
	v, err := (U32Be{}).Read(ctxt)
	return int32(v), err
}

func (I64Le) Read(ctxt *ReadCtxt) (int64, error) {
	v, err := (U64Le{}).Read(ctxt)
	return int64(v), err
}

func (I64Be) Read(ctxt *ReadCtxt) (int64, error) {
	v, err := (U64Be{}).Read(ctxt)
	return int64(v), err
}

func (F32Le) Read(ctxt *ReadCtxt) (float32, error) {
	v, err := (U32Le{}).Read(ctxt)
	return math.Float32frombits(v), err
}

func (F32Be) Read(ctxt *ReadCtxt) (float32, error) {
	v, err := (U32Be{}).Read(ctxt)
	return math.Float32frombits(v), err
}

func (F64Le) Read(ctxt *ReadCtxt) (float64, error) {
	v, err := (U64Le{}).Read(ctxt)
	return math.Float64frombits(v), err
}

func (F64Be) Read(ctxt *ReadCtxt) (float64, error) {
	v, err := (U64Be{}).Read(ctxt)
	return math.Float64frombits(v), err
}

// InvalidDataDescription is the sentinel host/format type for a position
// spec.md §4.E's lowering table could not classify (its "anything else"
// row), named after the original ddl_rt::InvalidDataDescription.
type InvalidDataDescription struct{}

func (InvalidDataDescription) Marker() {}

func (InvalidDataDescription) Read(*ReadCtxt) (InvalidDataDescription, error) {
	return InvalidDataDescription{}, &ReadError{Reason: "invalid data description"}
}
