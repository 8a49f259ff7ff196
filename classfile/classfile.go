// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

// Package classfile decodes the binary layout of a Java .class file (JVM
// specification chapter 4) into a structured in-memory representation:
// the constant pool, class/field/method tables, and the Code attribute
// carrying each method's raw bytecode. It performs no linking, no
// verification, and no class-hierarchy resolution — those are out of
// scope for this core (see SPEC_FULL.md §1).
package classfile

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/mstepan/gojvm/internal/tracelog"
)

// Magic is the required 4-byte prefix of every class file.
const Magic uint32 = 0xCAFEBABE

// JavaVersion maps a class file's major version to the Java release that
// produced it, grounded on the pkg-inspector wasm tool's majorVersionMap.
type JavaVersion int

const (
	VersionUnsupported JavaVersion = iota
	Version17                     // major 0x3D (61) — the version this core targets
)

var majorToJavaVersion = map[uint16]JavaVersion{
	61: Version17,
}

func (v JavaVersion) String() string {
	switch v {
	case Version17:
		return "17"
	default:
		return "unsupported"
	}
}

// ClassFile is the fully decoded, in-memory representation of a .class
// file (§3, component E).
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	JavaVersion  JavaVersion

	ConstantPool *ConstantPool

	AccessFlags AccessFlags
	ThisClass   string
	SuperClass  string
	Interfaces  []string

	Fields  []FieldInfo
	Methods []MethodInfo

	data   []byte
	mapped mmap.MMap
	file   *os.File
	logger *tracelog.Logger
}

// minClassFileSize is the smallest a syntactically complete class file
// can be: magic(4) + minor(2) + major(2) + constant_pool_count(2) +
// access_flags(2) + this_class(2) + super_class(2) + interfaces_count(2)
// + fields_count(2) + methods_count(2) + attributes_count(2).
const minClassFileSize = 24

// Open memory-maps the named .class file and parses it. The returned
// ClassFile must be Close'd to release the mapping.
//
// Grounded on file.go's File.New: os.Open followed by mmap.Map(f,
// mmap.RDONLY, 0) instead of a buffered read, so that large class files
// are not copied wholesale into the Go heap before parsing even begins.
func Open(name string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("classfile: memory-mapping %s: %w", name, err)
	}

	cf, err := parse(data, opts)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	cf.mapped = data
	cf.file = f
	return cf, nil
}

// Parse decodes data (already resident in memory — e.g. embedded, fetched
// over the network, or produced by a test) into a ClassFile.
//
// Grounded on file.go's File.NewBytes: the same parse path as Open, minus
// the mmap/file ownership.
func Parse(data []byte, opts *Options) (*ClassFile, error) {
	return parse(data, opts)
}

// Close releases any memory mapping backing the ClassFile. It is a no-op
// for a ClassFile produced by Parse.
func (cf *ClassFile) Close() error {
	if cf.mapped != nil {
		if err := cf.mapped.Unmap(); err != nil {
			return err
		}
	}
	if cf.file != nil {
		return cf.file.Close()
	}
	return nil
}

// parse performs the strictly-ordered top-level decode described in §4.5:
// magic, version, constant pool, class access flags, this/super class,
// interfaces, fields, methods.
//
// Grounded on file.go's File.Parse: a fixed call sequence where the first
// hard failure aborts the whole parse.
func parse(data []byte, opts *Options) (*ClassFile, error) {
	opts = opts.orDefaults()
	logger := opts.logger()

	if len(data) < minClassFileSize {
		return nil, ErrTinyFile
	}

	r := NewReader(data)

	magic, err := r.U4()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: got 0x%08X", ErrInvalidMagic, magic)
	}

	minor, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading minor_version: %w", err)
	}
	major, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading major_version: %w", err)
	}
	javaVersion, ok := majorToJavaVersion[major]
	if !ok {
		// Per SPEC_FULL.md §9: an unrecognized major version is a warning,
		// not a fatal format error — the remaining structure is still
		// well-formed and worth decoding.
		logger.Warnf("unrecognized class file major version %d (minor %d); proceeding", major, minor)
		javaVersion = VersionUnsupported
	}

	cp, err := readConstantPool(r, opts, logger)
	if err != nil {
		return nil, err
	}

	accessFlags, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading class access_flags: %w", err)
	}

	thisClassIndex, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading this_class: %w", err)
	}
	thisClass, err := cp.ResolveClassUTF8(thisClassIndex)
	if err != nil {
		return nil, fmt.Errorf("classfile: resolving this_class: %w", err)
	}

	superClassIndex, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading super_class: %w", err)
	}
	var superClass string
	if superClassIndex != 0 {
		superClass, err = cp.ResolveClassUTF8(superClassIndex)
		if err != nil {
			return nil, fmt.Errorf("classfile: resolving super_class: %w", err)
		}
	}

	interfaceCount, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading interfaces_count: %w", err)
	}
	interfaces := make([]string, interfaceCount)
	for i := range interfaces {
		idx, err := r.U2()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading interfaces[%d]: %w", i, err)
		}
		name, err := cp.ResolveClassUTF8(idx)
		if err != nil {
			return nil, fmt.Errorf("classfile: resolving interfaces[%d]: %w", i, err)
		}
		interfaces[i] = name
	}

	fields, err := readFields(r, cp, opts, logger)
	if err != nil {
		return nil, err
	}

	methods, err := readMethods(r, cp, opts, logger)
	if err != nil {
		return nil, err
	}

	logger.Infof("parsed class %s (super %s), %d field(s), %d method(s)", thisClass, superClass, len(fields), len(methods))

	return &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		JavaVersion:  javaVersion,
		ConstantPool: cp,
		AccessFlags:  AccessFlags(accessFlags),
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		data:         data,
		logger:       logger,
	}, nil
}

// FindMethod returns the first method with the given name, per §4.5:
// multiple methods sharing a name (legal for overloads) resolve to the
// first declared. Absence is reported as ErrMainNotFound, a recoverable
// error the caller decides how to surface.
func (cf *ClassFile) FindMethod(name string) (*MethodInfo, error) {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			return &cf.Methods[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMainNotFound, name)
}
