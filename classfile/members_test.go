// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import "testing"

func TestReadMethodsWithAndWithoutCode(t *testing.T) {
	data := minimalClassFile("main", []byte{0xB1}) // return
	cf, err := Parse(data, &Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cf.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(cf.Methods))
	}
	m := cf.Methods[0]
	if m.Name != "main" || m.Descriptor != "()V" {
		t.Fatalf("method = %+v", m)
	}
	if !m.AccessFlags.Is(MethodPublic) || !m.AccessFlags.Is(MethodStatic) {
		t.Fatalf("access flags = %v, want public+static", m.AccessFlags)
	}
	code, err := m.CodeAttribute()
	if err != nil {
		t.Fatalf("CodeAttribute: %v", err)
	}
	if len(code.Code) != 1 || code.Code[0] != 0xB1 {
		t.Fatalf("code = %v", code.Code)
	}
}

func TestMethodWithoutCodeAttributeErrors(t *testing.T) {
	data := minimalClassFile("main", nil)
	cf, err := Parse(data, &Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := cf.Methods[0].CodeAttribute(); err == nil {
		t.Fatal("expected ErrNoCodeAttribute")
	}
}
