// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package vm

import (
	"github.com/mstepan/gojvm/classfile"
	"github.com/mstepan/gojvm/internal/tracelog"
)

// RunMethod interprets a single method's Code attribute to completion and
// returns its terminal Result. This is the entry point cmd/jvm calls
// after locating the main method in a parsed class file.
func RunMethod(code *classfile.CodeAttribute, pool *classfile.ConstantPool, logger *tracelog.Logger) (Result, error) {
	in := NewInterpreter(code.Code, int(code.MaxStack), int(code.MaxLocals), pool, logger)
	return in.Run()
}
