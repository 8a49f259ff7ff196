// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import (
	"fmt"

	"github.com/mstepan/gojvm/internal/tracelog"
)

// Member is the shared shape of a field_info/method_info record: an
// access-flag mask plus a name and descriptor resolved through the
// constant pool, plus the record's attributes. Grounded on section.go's
// and symbol.go's "fixed fields plus a resolved name" table-of-N-records
// shape.
type Member struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// FieldInfo describes one field_info record (§4.4).
type FieldInfo struct {
	Member
}

// MethodInfo describes one method_info record (§4.4). The presence of a
// Code attribute is optional: native and abstract methods carry none.
type MethodInfo struct {
	Member
}

// CodeAttribute returns the method's Code attribute, or ErrNoCodeAttribute
// if the method has none (native, abstract).
func (m *MethodInfo) CodeAttribute() (*CodeAttribute, error) {
	for _, attr := range m.Attributes {
		if attr.Code != nil {
			return attr.Code, nil
		}
	}
	return nil, fmt.Errorf("%w: %s%s", ErrNoCodeAttribute, m.Name, m.Descriptor)
}

func readMember(r *Reader, cp *ConstantPool, opts *Options, logger *tracelog.Logger) (Member, error) {
	flags, err := r.U2()
	if err != nil {
		return Member{}, fmt.Errorf("access_flags: %w", err)
	}
	nameIndex, err := r.U2()
	if err != nil {
		return Member{}, fmt.Errorf("name_index: %w", err)
	}
	name, err := cp.ResolveUTF8Strict(nameIndex)
	if err != nil {
		return Member{}, fmt.Errorf("resolving name: %w", err)
	}
	descIndex, err := r.U2()
	if err != nil {
		return Member{}, fmt.Errorf("descriptor_index: %w", err)
	}
	desc, err := cp.ResolveUTF8Strict(descIndex)
	if err != nil {
		return Member{}, fmt.Errorf("resolving descriptor: %w", err)
	}
	attrs, err := readAttributes(r, cp, opts, logger, 0)
	if err != nil {
		return Member{}, fmt.Errorf("attributes: %w", err)
	}

	return Member{
		AccessFlags: AccessFlags(flags),
		Name:        name,
		Descriptor:  desc,
		Attributes:  attrs,
	}, nil
}

// readFields decodes the fields_count field followed by that many
// field_info records.
func readFields(r *Reader, cp *ConstantPool, opts *Options, logger *tracelog.Logger) ([]FieldInfo, error) {
	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading fields_count: %w", err)
	}
	fields := make([]FieldInfo, count)
	for i := range fields {
		m, err := readMember(r, cp, opts, logger)
		if err != nil {
			return nil, fmt.Errorf("classfile: field %d: %w", i, err)
		}
		fields[i] = FieldInfo{Member: m}
	}
	return fields, nil
}

// readMethods decodes the methods_count field followed by that many
// method_info records.
func readMethods(r *Reader, cp *ConstantPool, opts *Options, logger *tracelog.Logger) ([]MethodInfo, error) {
	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading methods_count: %w", err)
	}
	methods := make([]MethodInfo, count)
	for i := range methods {
		m, err := readMember(r, cp, opts, logger)
		if err != nil {
			return nil, fmt.Errorf("classfile: method %d: %w", i, err)
		}
		methods[i] = MethodInfo{Member: m}
		logger.Debugf("method %s%s: %d attribute(s)", m.Name, m.Descriptor, len(m.Attributes))
	}
	return methods, nil
}
