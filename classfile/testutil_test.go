// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

// classBuilder assembles raw class-file bytes by hand for tests, so each
// test exercises the real byte-level grammar rather than a synthetic
// in-memory fixture.
type classBuilder struct {
	buf []byte
}

func (b *classBuilder) u1(v uint8) *classBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *classBuilder) u2(v uint16) *classBuilder {
	b.buf = append(b.buf, byte(v>>8), byte(v))
	return b
}

func (b *classBuilder) u4(v uint32) *classBuilder {
	b.buf = append(b.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	return b
}

func (b *classBuilder) bytes(raw ...byte) *classBuilder {
	b.buf = append(b.buf, raw...)
	return b
}

// utf8Entry appends a Utf8 constant pool entry (tag, length, payload).
func (b *classBuilder) utf8Entry(s string) *classBuilder {
	b.u1(uint8(TagUtf8))
	b.u2(uint16(len(s)))
	b.buf = append(b.buf, []byte(s)...)
	return b
}

func (b *classBuilder) classEntry(nameIndex uint16) *classBuilder {
	return b.u1(uint8(TagClass)).u2(nameIndex)
}

// minimalClassFile builds the bytes for a class with no super interfaces,
// no fields, one method (with the given code bytes, or no Code attribute
// if code is nil), named methodName with descriptor "()V".
func minimalClassFile(methodName string, code []byte) []byte {
	b := &classBuilder{}
	b.u4(Magic)
	b.u2(0)  // minor
	b.u2(61) // major: Version17

	// Constant pool: index 0 reserved.
	//  1: Utf8 "Main"
	//  2: Class -> 1
	//  3: Utf8 methodName
	//  4: Utf8 "()V"
	//  5: Utf8 "Code"     (only used if code != nil)
	count := uint16(5)
	if code == nil {
		count = 4
	}
	b.u2(count + 1)
	b.utf8Entry("Main")
	b.classEntry(1)
	b.utf8Entry(methodName)
	b.utf8Entry("()V")
	if code != nil {
		b.utf8Entry("Code")
	}

	b.u2(uint16(ClassPublic)) // access_flags
	b.u2(2)                   // this_class -> Main
	b.u2(0)                   // super_class: none
	b.u2(0)                   // interfaces_count
	b.u2(0)                   // fields_count

	b.u2(1) // methods_count
	b.u2(uint16(MethodPublic | MethodStatic))
	b.u2(3) // name_index -> methodName
	b.u2(4) // descriptor_index -> "()V"

	if code == nil {
		b.u2(0) // attributes_count
	} else {
		b.u2(1) // attributes_count
		b.u2(5) // attribute_name_index -> "Code"
		codeBodyLen := 2 + 2 + 4 + len(code) + 2 + 2
		b.u4(uint32(codeBodyLen))
		b.u2(4) // max_stack
		b.u2(2) // max_locals
		b.u4(uint32(len(code)))
		b.bytes(code...)
		b.u2(0) // exception_table_length
		b.u2(0) // attributes_count (nested)
	}

	return b.buf
}
