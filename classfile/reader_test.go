// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import (
	"errors"
	"testing"
)

func TestReaderScalarReads(t *testing.T) {
	r := NewReader([]byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x11, 0x42})

	magic, err := r.U4()
	if err != nil {
		t.Fatalf("U4: %v", err)
	}
	if magic != 0xCAFEBABE {
		t.Fatalf("U4 = 0x%X, want 0xCAFEBABE", magic)
	}

	minor, err := r.U2()
	if err != nil {
		t.Fatalf("U2: %v", err)
	}
	if minor != 0x0011 {
		t.Fatalf("U2 = 0x%X, want 0x0011", minor)
	}

	b, err := r.U1()
	if err != nil {
		t.Fatalf("U1: %v", err)
	}
	if b != 0x42 {
		t.Fatalf("U1 = 0x%X, want 0x42", b)
	}

	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestReaderUnexpectedEOFLeavesCursorUnchanged(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	before := r.Pos()

	if _, err := r.U4(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("U4 past end: got %v, want ErrUnexpectedEOF", err)
	}
	if r.Pos() != before {
		t.Fatalf("Pos() = %d after failed read, want unchanged %d", r.Pos(), before)
	}
}

func TestReaderBytesAliasesBackingArray(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data)
	b, err := r.Bytes(4)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if &b[0] != &data[0] {
		t.Fatalf("Bytes did not alias the backing array")
	}
}

func TestReaderSkip(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	v, err := r.U1()
	if err != nil {
		t.Fatalf("U1 after Skip: %v", err)
	}
	if v != 4 {
		t.Fatalf("U1 after Skip = %d, want 4", v)
	}
}

func TestReaderSkipPastEndFails(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if err := r.Skip(5); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Skip past end: got %v, want ErrUnexpectedEOF", err)
	}
}
