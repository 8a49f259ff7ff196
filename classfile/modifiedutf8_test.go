// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import "testing"

func TestDecodeModifiedUTF8ASCII(t *testing.T) {
	got, err := decodeModifiedUTF8([]byte("Hello, world!"))
	if err != nil {
		t.Fatalf("decodeModifiedUTF8: %v", err)
	}
	if got != "Hello, world!" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeModifiedUTF8EmbeddedNUL(t *testing.T) {
	// NUL is encoded as the overlong two-byte sequence 0xC0 0x80.
	got, err := decodeModifiedUTF8([]byte{'a', 0xC0, 0x80, 'b'})
	if err != nil {
		t.Fatalf("decodeModifiedUTF8: %v", err)
	}
	want := "a\x00b"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeModifiedUTF8TwoByteSequence(t *testing.T) {
	// U+00E9 (é) as 110xxxxx 10xxxxxx.
	got, err := decodeModifiedUTF8([]byte{0xC3, 0xA9})
	if err != nil {
		t.Fatalf("decodeModifiedUTF8: %v", err)
	}
	if got != "é" {
		t.Fatalf("got %q, want é", got)
	}
}

func TestDecodeModifiedUTF8SurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) encoded as a surrogate pair, each surrogate
	// emitted as its own three-byte group: D83D DE00.
	got, err := decodeModifiedUTF8([]byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80})
	if err != nil {
		t.Fatalf("decodeModifiedUTF8: %v", err)
	}
	want := "\U0001F600"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeModifiedUTF8TruncatedSequence(t *testing.T) {
	if _, err := decodeModifiedUTF8([]byte{0xC3}); err == nil {
		t.Fatal("expected an error for a truncated two-byte sequence")
	}
}
