// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

// Package vm interprets the bytecode of a single method against a per-call
// operand stack and local-variable array. It consumes a classfile.CodeAttribute
// and classfile.ConstantPool and performs no linking of its own: method and
// field references are resolved to their textual names and logged, never
// dispatched.
package vm

import "fmt"

// Kind discriminates the payload carried by a Value.
type Kind uint8

const (
	Undefined Kind = iota
	Int
	Long
	Float
	Double
	Reference
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "Undefined"
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case Reference:
		return "Reference"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a tagged variant over the JVM's runtime value shapes, grounded
// on the zserge-tojvm Object/VM value representation but collapsed into a
// single flat struct rather than an interface hierarchy, matching how this
// core represents every other sum type (constant pool entries, attributes).
// Values are copy-by-value: pushing, popping, and storing a Value never
// shares mutable state between stack and locals.
type Value struct {
	Kind Kind

	I int32
	L int64
	F float32
	D float64
	R string // Reference: a resolved name (class/string), opaque otherwise
}

// IntValue constructs an Int-kinded Value.
func IntValue(i int32) Value { return Value{Kind: Int, I: i} }

// LongValue constructs a Long-kinded Value.
func LongValue(l int64) Value { return Value{Kind: Long, L: l} }

// FloatValue constructs a Float-kinded Value.
func FloatValue(f float32) Value { return Value{Kind: Float, F: f} }

// DoubleValue constructs a Double-kinded Value.
func DoubleValue(d float64) Value { return Value{Kind: Double, D: d} }

// ReferenceValue constructs a Reference-kinded Value carrying name as its
// opaque handle (this core has no object heap to point to).
func ReferenceValue(name string) Value { return Value{Kind: Reference, R: name} }

func (v Value) String() string {
	switch v.Kind {
	case Int:
		return fmt.Sprintf("Int(%d)", v.I)
	case Long:
		return fmt.Sprintf("Long(%d)", v.L)
	case Float:
		return fmt.Sprintf("Float(%g)", v.F)
	case Double:
		return fmt.Sprintf("Double(%g)", v.D)
	case Reference:
		return fmt.Sprintf("Reference(%s)", v.R)
	default:
		return "Undefined"
	}
}
