// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package vm

import (
	"errors"
	"testing"
)

func TestFramePushPopRespectsMaxStack(t *testing.T) {
	f := NewFrame(2, 1)
	if err := f.Push(IntValue(1)); err != nil {
		t.Fatalf("push 1: %v", err)
	}
	if err := f.Push(IntValue(2)); err != nil {
		t.Fatalf("push 2: %v", err)
	}
	if err := f.Push(IntValue(3)); !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("push 3: got %v, want ErrStackOverflow", err)
	}

	v, err := f.Pop()
	if err != nil || v.I != 2 {
		t.Fatalf("pop = %v, %v", v, err)
	}
}

func TestFramePopEmptyFails(t *testing.T) {
	f := NewFrame(1, 0)
	if _, err := f.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("got %v, want ErrStackUnderflow", err)
	}
}

func TestFrameLocalsInitializedUndefined(t *testing.T) {
	f := NewFrame(1, 3)
	v, err := f.GetLocal(2)
	if err != nil {
		t.Fatalf("GetLocal: %v", err)
	}
	if v.Kind != Undefined {
		t.Fatalf("local 2 = %v, want Undefined", v)
	}
}

func TestFrameStoreAndLoadLocal(t *testing.T) {
	f := NewFrame(2, 2)
	if err := f.Push(IntValue(42)); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := f.StoreLocal(1); err != nil {
		t.Fatalf("StoreLocal: %v", err)
	}
	if err := f.LoadLocal(1); err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	v, err := f.Pop()
	if err != nil || v.I != 42 {
		t.Fatalf("pop after load = %v, %v", v, err)
	}
}

func TestFrameLocalIndexOutOfRange(t *testing.T) {
	f := NewFrame(1, 1)
	if _, err := f.GetLocal(5); !errors.Is(err, ErrLocalIndexOutOfRange) {
		t.Fatalf("got %v, want ErrLocalIndexOutOfRange", err)
	}
	if err := f.SetLocal(-1, IntValue(0)); !errors.Is(err, ErrLocalIndexOutOfRange) {
		t.Fatalf("got %v, want ErrLocalIndexOutOfRange", err)
	}
}

func TestFramePopKindMismatch(t *testing.T) {
	f := NewFrame(1, 0)
	if err := f.Push(ReferenceValue("x")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := f.PopKind(Int); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("got %v, want ErrTypeMismatch", err)
	}
}
