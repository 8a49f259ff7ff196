// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import (
	"errors"
	"testing"
)

func TestParseMinimalClassFile(t *testing.T) {
	data := minimalClassFile("main", []byte{0xB1})
	cf, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer cf.Close()

	if cf.ThisClass != "Main" {
		t.Fatalf("ThisClass = %q, want Main", cf.ThisClass)
	}
	if cf.SuperClass != "" {
		t.Fatalf("SuperClass = %q, want empty", cf.SuperClass)
	}
	if cf.JavaVersion != Version17 {
		t.Fatalf("JavaVersion = %v, want Version17", cf.JavaVersion)
	}
	if len(cf.Interfaces) != 0 {
		t.Fatalf("Interfaces = %v, want none", cf.Interfaces)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := minimalClassFile("main", []byte{0xB1})
	data[0] = 0x00 // corrupt the magic
	if _, err := Parse(data, nil); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("got %v, want ErrInvalidMagic", err)
	}
}

func TestParseRejectsTinyFile(t *testing.T) {
	if _, err := Parse([]byte{0xCA, 0xFE}, nil); !errors.Is(err, ErrTinyFile) {
		t.Fatalf("got %v, want ErrTinyFile", err)
	}
}

func TestParseToleratesUnknownMajorVersion(t *testing.T) {
	data := minimalClassFile("main", []byte{0xB1})
	// major_version lives right after minor_version, at offset 4+2 = 6.
	data[6] = 0xFF
	data[7] = 0xFF
	cf, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse with unrecognized major version should not be fatal: %v", err)
	}
	if cf.JavaVersion != VersionUnsupported {
		t.Fatalf("JavaVersion = %v, want VersionUnsupported", cf.JavaVersion)
	}
}

func TestFindMethod(t *testing.T) {
	data := minimalClassFile("main", []byte{0xB1})
	cf, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	m, err := cf.FindMethod("main")
	if err != nil {
		t.Fatalf("FindMethod: %v", err)
	}
	if m.Name != "main" {
		t.Fatalf("FindMethod returned %+v", m)
	}

	if _, err := cf.FindMethod("missing"); !errors.Is(err, ErrMainNotFound) {
		t.Fatalf("got %v, want ErrMainNotFound", err)
	}
}
