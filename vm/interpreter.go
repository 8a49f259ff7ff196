// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package vm

import (
	"fmt"
	"math"

	"github.com/mstepan/gojvm/classfile"
	"github.com/mstepan/gojvm/internal/tracelog"
)

// Interpreter drives the fetch-decode-execute loop over a single method's
// bytecode (§4.7), grounded on the KTStephano-GVM execNextInstruction /
// ExecProgram idiom: a switch-dispatched step function called from a
// recover()-wrapped outer loop, so a programming error inside a single
// opcode's handler (an out-of-range slice index, say) surfaces as a
// regular error return rather than crashing the whole process.
type Interpreter struct {
	code   []byte
	pc     int
	frame  *Frame
	pool   *classfile.ConstantPool
	logger *tracelog.Logger
}

// Result is what a terminated method invocation produced: either a
// popped value (ireturn) or nothing (plain return).
type Result struct {
	Value    Value
	HasValue bool
}

// NewInterpreter constructs an interpreter over code, backed by a fresh
// Frame sized from maxStack/maxLocals and resolving constant-pool
// references against pool.
func NewInterpreter(code []byte, maxStack, maxLocals int, pool *classfile.ConstantPool, logger *tracelog.Logger) *Interpreter {
	if logger == nil {
		logger = tracelog.Std
	}
	return &Interpreter{
		code:   code,
		frame:  NewFrame(maxStack, maxLocals),
		pool:   pool,
		logger: logger,
	}
}

// Run executes the bytecode to completion: a terminal return/ireturn, the
// program counter running past the end of code, or a fatal error (§4.7,
// §7). A panic raised from within a single step (e.g. a slice index bug)
// is recovered and reported as an error rather than propagated, matching
// the top-level boundary KTStephano-GVM's ExecProgram establishes around
// execNextInstruction.
func (in *Interpreter) Run() (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("vm: interpreter panic at pc=%d: %v", in.pc, r)
		}
	}()

	for in.pc < len(in.code) {
		opAddr := in.pc
		op, readErr := in.fetch1()
		if readErr != nil {
			return Result{}, readErr
		}

		in.logger.Debugf("pc=%d op=0x%02X (%s) stack_depth=%d", opAddr, op, opcodeName(op), in.frame.StackDepth())

		done, res, stepErr := in.step(opAddr, op)
		if stepErr != nil {
			return Result{}, fmt.Errorf("vm: at pc=%d (%s): %w", opAddr, opcodeName(op), stepErr)
		}
		if done {
			return res, nil
		}
	}
	return Result{}, nil
}

// step executes one decoded instruction. opAddr is the address of the
// opcode byte itself (branch offsets are relative to this, not to the
// post-operand pc). It reports whether the method terminated and, if so,
// the terminal Result.
func (in *Interpreter) step(opAddr int, op byte) (bool, Result, error) {
	switch op {
	case opNop:
		return false, Result{}, nil

	case opIconst0, opIconst1, opIconst2, opIconst3, opIconst4, opIconst5:
		return false, Result{}, in.frame.Push(IntValue(int32(op - opIconst0)))

	case opBipush:
		b, err := in.fetch1()
		if err != nil {
			return false, Result{}, err
		}
		return false, Result{}, in.frame.Push(IntValue(int32(int8(b))))

	case opLdc:
		idx, err := in.fetch1()
		if err != nil {
			return false, Result{}, err
		}
		v, err := in.resolveLdc(uint16(idx))
		if err != nil {
			return false, Result{}, err
		}
		return false, Result{}, in.frame.Push(v)

	case opIload0, opIload1, opIload2, opIload3:
		return false, Result{}, in.loadTyped(int(op-opIload0), Int)

	case opAload0, opAload1, opAload2, opAload3:
		return false, Result{}, in.loadTyped(int(op-opAload0), Reference)

	case opIstore0, opIstore1, opIstore2, opIstore3:
		return false, Result{}, in.storeTyped(int(op-opIstore0), Int)

	case opIadd:
		b, err := in.frame.PopKind(Int)
		if err != nil {
			return false, Result{}, err
		}
		a, err := in.frame.PopKind(Int)
		if err != nil {
			return false, Result{}, err
		}
		return false, Result{}, in.frame.Push(IntValue(a.I + b.I))

	case opIinc:
		index, err := in.fetch1()
		if err != nil {
			return false, Result{}, err
		}
		deltaByte, err := in.fetch1()
		if err != nil {
			return false, Result{}, err
		}
		cur, err := in.frame.GetLocal(int(index))
		if err != nil {
			return false, Result{}, err
		}
		if cur.Kind != Int {
			return false, Result{}, fmt.Errorf("%w: iinc local is %s, want Int", ErrTypeMismatch, cur.Kind)
		}
		delta := int32(int8(deltaByte))
		return false, Result{}, in.frame.SetLocal(int(index), IntValue(cur.I+delta))

	case opIfIcmpeq, opIfIcmpne, opIfIcmplt, opIfIcmpge, opIfIcmpgt, opIfIcmple:
		offset, err := in.fetch2Signed()
		if err != nil {
			return false, Result{}, err
		}
		b, err := in.frame.PopKind(Int)
		if err != nil {
			return false, Result{}, err
		}
		a, err := in.frame.PopKind(Int)
		if err != nil {
			return false, Result{}, err
		}
		if compareInt(op, a.I, b.I) {
			in.pc = opAddr + int(offset)
		}
		return false, Result{}, nil

	case opGoto:
		offset, err := in.fetch2Signed()
		if err != nil {
			return false, Result{}, err
		}
		in.pc = opAddr + int(offset)
		return false, Result{}, nil

	case opIreturn:
		v, err := in.frame.PopKind(Int)
		if err != nil {
			return false, Result{}, err
		}
		return true, Result{Value: v, HasValue: true}, nil

	case opReturn:
		return true, Result{}, nil

	case opGetstatic:
		idx, err := in.fetch2()
		if err != nil {
			return false, Result{}, err
		}
		name, err := in.pool.ResolveUTF8(idx)
		if err != nil {
			return false, Result{}, err
		}
		in.logger.Infof("getstatic %s (unresolved: no object heap in this core)", name)
		return false, Result{}, nil

	case opInvokevirtual, opInvokespecial, opInvokestatic:
		idx, err := in.fetch2()
		if err != nil {
			return false, Result{}, err
		}
		name, err := in.pool.ResolveUTF8(idx)
		if err != nil {
			return false, Result{}, err
		}
		in.logger.Infof("%s %s (not dispatched: no child frame in this core)", opcodeName(op), name)
		return false, Result{}, nil

	case opNew:
		idx, err := in.fetch2()
		if err != nil {
			return false, Result{}, err
		}
		name, err := in.pool.ResolveUTF8(idx)
		if err != nil {
			return false, Result{}, err
		}
		in.logger.Infof("new %s (not allocated: no object heap in this core)", name)
		return false, Result{}, nil

	default:
		return false, Result{}, fmt.Errorf("%w: 0x%02X", ErrUnknownOpcode, op)
	}
}

func (in *Interpreter) loadTyped(index int, kind Kind) error {
	v, err := in.frame.GetLocal(index)
	if err != nil {
		return err
	}
	if v.Kind != kind {
		return fmt.Errorf("%w: local %d is %s, want %s", ErrTypeMismatch, index, v.Kind, kind)
	}
	return in.frame.Push(v)
}

func (in *Interpreter) storeTyped(index int, kind Kind) error {
	v, err := in.frame.PopKind(kind)
	if err != nil {
		return err
	}
	return in.frame.SetLocal(index, v)
}

// resolveLdc pushes the Value for a pool entry ldc references, widened
// (per this core's corrected behavior) to Integer, Float, String, and
// Class — the JVM specification's own breadth, rather than the narrower
// Utf8-only resolution of the reference this core was modeled on.
func (in *Interpreter) resolveLdc(index uint16) (Value, error) {
	entry, err := in.pool.At(index)
	if err != nil {
		return Value{}, err
	}
	switch entry.Tag {
	case classfile.TagInteger:
		return IntValue(int32(entry.Bits32)), nil
	case classfile.TagFloat:
		return FloatValue(math.Float32frombits(entry.Bits32)), nil
	case classfile.TagString:
		s, err := in.pool.ResolveUTF8(index)
		if err != nil {
			return Value{}, err
		}
		return ReferenceValue(s), nil
	case classfile.TagClass:
		name, err := in.pool.ResolveClassUTF8(index)
		if err != nil {
			return Value{}, err
		}
		return ReferenceValue(name), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedLdcKind, entry.Tag)
	}
}

func compareInt(op byte, a, b int32) bool {
	switch op {
	case opIfIcmpeq:
		return a == b
	case opIfIcmpne:
		return a != b
	case opIfIcmplt:
		return a < b
	case opIfIcmpge:
		return a >= b
	case opIfIcmpgt:
		return a > b
	case opIfIcmple:
		return a <= b
	default:
		return false
	}
}

func (in *Interpreter) fetch1() (byte, error) {
	if in.pc >= len(in.code) {
		return 0, fmt.Errorf("%w: opcode or operand at pc=%d", ErrTruncatedOperand, in.pc)
	}
	b := in.code[in.pc]
	in.pc++
	return b, nil
}

func (in *Interpreter) fetch2() (uint16, error) {
	if in.pc+2 > len(in.code) {
		return 0, fmt.Errorf("%w: u2 operand at pc=%d", ErrTruncatedOperand, in.pc)
	}
	v := uint16(in.code[in.pc])<<8 | uint16(in.code[in.pc+1])
	in.pc += 2
	return v, nil
}

func (in *Interpreter) fetch2Signed() (int16, error) {
	v, err := in.fetch2()
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}
