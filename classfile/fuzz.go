// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

// Fuzz is the legacy go-fuzz entry point convention: a free function
// taking the raw corpus bytes and returning 1 when the input is
// "interesting" for the fuzzer's coverage-guided mutation to keep, 0
// otherwise. Grounded on the teacher's fuzz.go, which exercises its own
// Parse the same way.
func Fuzz(data []byte) int {
	cf, err := Parse(data, &Options{
		MaxConstantPoolEntries:   1 << 16,
		MaxAttributeNestingDepth: 64,
	})
	if err != nil {
		return 0
	}
	_ = cf.Close()
	return 1
}
