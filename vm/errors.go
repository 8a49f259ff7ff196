// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package vm

import "errors"

var (
	// ErrStackOverflow is returned by Frame.Push when the operand stack is
	// already at max_stack capacity.
	ErrStackOverflow = errors.New("vm: operand stack overflow")

	// ErrStackUnderflow is returned by Frame.Pop on an empty operand stack.
	ErrStackUnderflow = errors.New("vm: operand stack underflow")

	// ErrLocalIndexOutOfRange is returned when a local-variable index is
	// not less than max_locals.
	ErrLocalIndexOutOfRange = errors.New("vm: local variable index out of range")

	// ErrTypeMismatch is returned when a popped or loaded Value's Kind does
	// not match what the opcode requires.
	ErrTypeMismatch = errors.New("vm: value kind mismatch")

	// ErrUnknownOpcode is returned when the fetch-decode step reads a byte
	// outside the supported opcode table.
	ErrUnknownOpcode = errors.New("vm: unrecognized opcode")

	// ErrTruncatedOperand is returned when an opcode's operand bytes run
	// past the end of the code array.
	ErrTruncatedOperand = errors.New("vm: truncated instruction operand")

	// ErrUnsupportedLdcKind is returned when ldc targets a pool entry that
	// is not an Integer, Float, String or Class entry (e.g. Utf8, Long,
	// Double, MethodHandle, MethodType, InvokeDynamic).
	ErrUnsupportedLdcKind = errors.New("vm: ldc target is not a supported constant kind")
)
