// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import "errors"

// Errors returned while decoding the binary layout of a .class file.
//
// These mirror the teacher's helper.go block of exported sentinels: one
// named error per failure mode, wrapped with fmt.Errorf where extra
// context (an offset, an index, a tag) is useful to a caller.
var (
	// ErrUnexpectedEOF is returned when a read would advance the cursor
	// past the end of the underlying byte sequence. The cursor is left
	// unchanged.
	ErrUnexpectedEOF = errors.New("classfile: unexpected end of data")

	// ErrInvalidMagic is returned when the leading 4 bytes are not 0xCAFEBABE.
	ErrInvalidMagic = errors.New("classfile: invalid magic number")

	// ErrBadConstantPoolIndex is returned when an index references a slot
	// outside [1, count) of the constant pool.
	ErrBadConstantPoolIndex = errors.New("classfile: constant pool index out of range")

	// ErrUnresolvableConstant is returned when ResolveUTF8 is asked to
	// resolve an entry kind that carries no textual representation
	// (Integer, Float, Long, Double, MethodHandle, MethodType,
	// InvokeDynamic, Reserved).
	ErrUnresolvableConstant = errors.New("classfile: constant pool entry is not resolvable to a string")

	// ErrWrongConstantKind is returned when a structure references a pool
	// index expecting one entry kind (e.g. Utf8) but finds another.
	ErrWrongConstantKind = errors.New("classfile: constant pool entry has the wrong kind for this reference")

	// ErrResolveDepthExceeded guards ResolveUTF8 against adversarial,
	// deeply-chained (or cyclic) index references.
	ErrResolveDepthExceeded = errors.New("classfile: constant pool resolution exceeded maximum depth")

	// ErrUnknownConstantTag is returned when a constant pool entry's tag
	// byte is not one of the tags in the JVM specification.
	ErrUnknownConstantTag = errors.New("classfile: unrecognized constant pool tag")

	// ErrMainNotFound is returned by FindMethod when no method with the
	// requested name exists. It is a recoverable error: the caller decides
	// how to report it.
	ErrMainNotFound = errors.New("classfile: method not found")

	// ErrNoCodeAttribute is returned when a method has no Code attribute
	// (e.g. it is native or abstract).
	ErrNoCodeAttribute = errors.New("classfile: method has no Code attribute")

	// ErrTooManyConstantPoolEntries guards against a maliciously large
	// declared constant pool count, per Options.MaxConstantPoolEntries.
	ErrTooManyConstantPoolEntries = errors.New("classfile: constant pool count exceeds configured maximum")

	// ErrAttributeNestingTooDeep guards the recursive attribute decoder
	// against pathological nesting, per Options.MaxAttributeNestingDepth.
	ErrAttributeNestingTooDeep = errors.New("classfile: attribute nesting exceeds configured maximum")

	// ErrTinyFile is returned when the input is too small to possibly hold
	// a minimal class file.
	ErrTinyFile = errors.New("classfile: file too small to be a class file")
)
