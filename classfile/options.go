// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import "github.com/mstepan/gojvm/internal/tracelog"

// Options configures a parse, grounded on the teacher's pe.Options
// (Fast, SectionEntropy, MaxCOFFSymbolsCount, ...): a small struct of
// parse-time knobs rather than a pile of package-level globals or
// variadic functional options, matching the shape the teacher's own New
// constructor takes.
type Options struct {
	// MaxConstantPoolEntries caps the declared constant_pool_count, 0
	// meaning unbounded. Guards against a maliciously large allocation
	// request from a declared count alone.
	MaxConstantPoolEntries uint32

	// MaxAttributeNestingDepth caps recursive attribute parsing (a Code
	// attribute's own nested attributes), 0 meaning unbounded.
	MaxAttributeNestingDepth uint32

	// SkipUnknownAttributes controls whether non-Code attributes are
	// retained as opaque Data or discarded outright once their length is
	// known. Retaining them (the default, false) lets a caller inspect
	// e.g. LineNumberTable or SourceFile bytes later.
	SkipUnknownAttributes bool

	// Logger receives parse-time trace output. Defaults to tracelog.Std.
	Logger *tracelog.Logger
}

func (o *Options) logger() *tracelog.Logger {
	if o == nil || o.Logger == nil {
		return tracelog.Std
	}
	return o.Logger
}

func (o *Options) orDefaults() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}
