// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import (
	"fmt"

	"github.com/mstepan/gojvm/internal/tracelog"
)

// codeAttributeName is the only attribute this core specialises; every
// other attribute (LineNumberTable, SourceFile, StackMapTable, ...) is
// retained only as an opaque, skipped byte range.
const codeAttributeName = "Code"

// ExceptionTableEntry is one row of a Code attribute's exception table.
// It is parsed, per the spec's stated non-goal, but never consulted by
// the interpreter: there is no exception propagation between frames in
// this core.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeAttribute is the specialised attribute variant carrying a method's
// executable bytecode.
//
// Bytecode is kept as a raw byte slice rather than pre-decoded into a
// vector of tagged instructions: JVM instructions are variable-length and
// carry embedded operands (1-byte indices, 2-byte indices, signed branch
// offsets measured from the opcode's own address). Pre-decoding would
// require either a parallel offset→index translation table for branch
// targets, or the decoded form would itself need to support
// byte-addressable indexing — at which point it is simplest to keep the
// bytes and decode lazily at the program counter, exactly as this core's
// interpreter (vm.Interpreter) does.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
}

// Attribute is a tagged variant discriminated by its resolved name. Only
// Code is given a specialised payload; everything else is retained as
// opaque bytes so a round-trip dump can still report the attribute's name
// and length.
type Attribute struct {
	Name string
	Code *CodeAttribute // non-nil iff Name == "Code"
	Data []byte         // raw payload for non-Code attributes
}

// readAttributes decodes an attributes_count followed by that many
// attribute records, per §4.3. depth guards the recursion a Code
// attribute's own nested attributes introduce against
// Options.MaxAttributeNestingDepth.
//
// Grounded on resource.go's doParseResourceDirectory: read a framed
// record, recurse into its nested framed records up to a depth limit,
// and return control to the caller once the record's declared length is
// fully consumed.
func readAttributes(r *Reader, cp *ConstantPool, opts *Options, logger *tracelog.Logger, depth int) ([]Attribute, error) {
	if opts.MaxAttributeNestingDepth > 0 && depth > int(opts.MaxAttributeNestingDepth) {
		return nil, ErrAttributeNestingTooDeep
	}

	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading attributes_count: %w", err)
	}

	attrs := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		attr, err := readAttribute(r, cp, opts, logger, depth)
		if err != nil {
			return nil, fmt.Errorf("classfile: attribute %d: %w", i, err)
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func readAttribute(r *Reader, cp *ConstantPool, opts *Options, logger *tracelog.Logger, depth int) (Attribute, error) {
	nameIndex, err := r.U2()
	if err != nil {
		return Attribute{}, fmt.Errorf("reading attribute_name_index: %w", err)
	}
	name, err := cp.ResolveUTF8Strict(nameIndex)
	if err != nil {
		return Attribute{}, fmt.Errorf("resolving attribute name: %w", err)
	}
	length, err := r.U4()
	if err != nil {
		return Attribute{}, fmt.Errorf("reading attribute_length for %q: %w", name, err)
	}

	if name != codeAttributeName {
		if opts.SkipUnknownAttributes {
			if err := r.Skip(int(length)); err != nil {
				return Attribute{}, fmt.Errorf("skipping attribute %q body: %w", name, err)
			}
			return Attribute{Name: name}, nil
		}
		data, err := r.Bytes(int(length))
		if err != nil {
			return Attribute{}, fmt.Errorf("reading attribute %q body: %w", name, err)
		}
		return Attribute{Name: name, Data: data}, nil
	}

	code, err := readCodeAttribute(r, cp, opts, logger, depth)
	if err != nil {
		return Attribute{}, fmt.Errorf("reading Code attribute: %w", err)
	}
	return Attribute{Name: name, Code: code}, nil
}

// readCodeAttribute decodes the Code attribute body per §4.3: two u2
// sizes, a u4-framed raw bytecode blob, an exception table, and nested
// (recursively parsed) attributes.
func readCodeAttribute(r *Reader, cp *ConstantPool, opts *Options, logger *tracelog.Logger, depth int) (*CodeAttribute, error) {
	maxStack, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("max_stack: %w", err)
	}
	maxLocals, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("max_locals: %w", err)
	}
	codeLength, err := r.U4()
	if err != nil {
		return nil, fmt.Errorf("code_length: %w", err)
	}
	code, err := r.Bytes(int(codeLength))
	if err != nil {
		return nil, fmt.Errorf("code: %w", err)
	}

	excTableLength, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("exception_table_length: %w", err)
	}
	excTable := make([]ExceptionTableEntry, excTableLength)
	for i := range excTable {
		startPC, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("exception_table[%d].start_pc: %w", i, err)
		}
		endPC, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("exception_table[%d].end_pc: %w", i, err)
		}
		handlerPC, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("exception_table[%d].handler_pc: %w", i, err)
		}
		catchType, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("exception_table[%d].catch_type: %w", i, err)
		}
		excTable[i] = ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	nested, err := readAttributes(r, cp, opts, logger, depth+1)
	if err != nil {
		return nil, fmt.Errorf("nested attributes: %w", err)
	}

	logger.Debugf("Code attribute: max_stack=%d max_locals=%d code_length=%d exceptions=%d",
		maxStack, maxLocals, codeLength, excTableLength)

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: excTable,
		Attributes:     nested,
	}, nil
}
