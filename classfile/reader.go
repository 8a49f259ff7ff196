// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import (
	"encoding/binary"
	"fmt"
)

// Reader is a bounds-checked, big-endian cursor over an immutable byte
// sequence. It is the only primitive surface every other decoder in this
// package consumes — constant pool, attributes, field/method tables, and
// the top-level class file assembler all read through it instead of
// touching the backing slice directly.
//
// The bound checks follow the teacher's helper.go (ReadUint16/32/64/8
// against pe.size), adapted from offset-parameterised reads to a
// monotonically advancing cursor: the class file grammar, unlike a PE
// image, is read strictly front to back with no random seeks.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential, bounds-checked reading. data is not
// copied; the caller must keep it alive and must not mutate it while the
// Reader is in use.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// Pos returns the current cursor offset, useful for error messages and for
// recording an opcode's own address before consuming its operands.
func (r *Reader) Pos() int {
	return r.pos
}

func (r *Reader) require(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, r.pos, r.Len())
	}
	return nil
}

// U1 reads one unsigned byte.
func (r *Reader) U1() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// U2 reads a big-endian 16-bit unsigned value.
func (r *Reader) U2() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// U4 reads a big-endian 32-bit unsigned value.
func (r *Reader) U4() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// U8 reads a big-endian 64-bit unsigned value.
func (r *Reader) U8() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// Bytes reads n raw bytes. The returned slice aliases the reader's backing
// array and must not be mutated by the caller.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes without returning them, used to
// discard opaque attribute payloads.
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}
