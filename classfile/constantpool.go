// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import (
	"fmt"

	"github.com/mstepan/gojvm/internal/tracelog"
)

// ConstantTag identifies the shape of a ConstantPoolEntry's payload. The
// numeric values are the wire-format tag bytes from the JVM specification
// table 4.4-A, kept verbatim so a disassembler dump matches the spec.
type ConstantTag uint8

const (
	TagReserved           ConstantTag = 0
	TagUtf8               ConstantTag = 1
	TagInteger            ConstantTag = 3
	TagFloat              ConstantTag = 4
	TagLong               ConstantTag = 5
	TagDouble             ConstantTag = 6
	TagClass              ConstantTag = 7
	TagString             ConstantTag = 8
	TagFieldref           ConstantTag = 9
	TagMethodref          ConstantTag = 10
	TagInterfaceMethodref ConstantTag = 11
	TagNameAndType        ConstantTag = 12
	TagMethodHandle       ConstantTag = 15
	TagMethodType         ConstantTag = 16
	TagInvokeDynamic      ConstantTag = 18
)

func (t ConstantTag) String() string {
	switch t {
	case TagReserved:
		return "Reserved"
	case TagUtf8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldref:
		return "Fieldref"
	case TagMethodref:
		return "Methodref"
	case TagInterfaceMethodref:
		return "InterfaceMethodref"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// ConstantPoolEntry is a tagged variant over the entry shapes in §3 of the
// specification. Only the fields relevant to Tag are meaningful; this
// mirrors the single flat struct used by the zserge-tojvm and
// daimatz-gojvm reference loaders rather than one Go type per tag, which
// would turn every switch in this package into a type switch for no
// benefit — the tag already disambiguates.
type ConstantPoolEntry struct {
	Tag ConstantTag

	// Utf8
	UTF8Value string

	// Integer / Float: 32-bit raw bits
	Bits32 uint32

	// Long / Double: 64-bit raw bits
	Bits64 uint64

	// Class.name_index, String.string_index, NameAndType.name_index
	NameIndex uint16

	// Fieldref/Methodref/InterfaceMethodref.class_index
	ClassIndex uint16

	// Fieldref/Methodref/InterfaceMethodref.name_and_type_index
	NameAndTypeIndex uint16

	// NameAndType.descriptor_index
	DescriptorIndex uint16
}

// ConstantPool is the 1-indexed, slot-0-reserved pool of a class file.
// Index 0 and the second slot of every Long/Double are TagReserved
// sentinels, so that indices quoted anywhere else in the file line up
// directly with slice positions.
type ConstantPool struct {
	entries []ConstantPoolEntry
}

// maxResolveDepth bounds the recursive walk in ResolveUTF8 against
// adversarially chained (or cyclic) constant pool references. A
// legitimate Methodref → NameAndType → Utf8 chain is at most 2 hops deep;
// this budget comfortably exceeds any structure a real compiler emits.
const maxResolveDepth = 32

// Count returns the number of slots, including index 0 and Reserved
// continuation slots.
func (cp *ConstantPool) Count() int {
	return len(cp.entries)
}

// At returns the entry at index, or an error if index is out of range.
func (cp *ConstantPool) At(index uint16) (*ConstantPoolEntry, error) {
	if int(index) <= 0 || int(index) >= len(cp.entries) {
		return nil, fmt.Errorf("%w: index %d (pool has %d slots)", ErrBadConstantPoolIndex, index, len(cp.entries))
	}
	return &cp.entries[index], nil
}

// readConstantPool decodes the constant_pool_count field and the entries
// that follow it, per §4.2. Grounded on zserge-tojvm's loader.cpinfo: a
// u2 count, then a tag-dispatch switch per slot, with Long/Double
// consuming an extra Reserved slot.
func readConstantPool(r *Reader, opts *Options, logger *tracelog.Logger) (*ConstantPool, error) {
	count, err := r.U2()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading constant_pool_count: %w", err)
	}
	if opts.MaxConstantPoolEntries > 0 && uint32(count) > opts.MaxConstantPoolEntries {
		return nil, fmt.Errorf("%w: declared %d, max %d", ErrTooManyConstantPoolEntries, count, opts.MaxConstantPoolEntries)
	}

	cp := &ConstantPool{entries: make([]ConstantPoolEntry, count)}
	// Slot 0 is left as its zero value, which is TagReserved (0).

	for i := uint16(1); i < count; i++ {
		tag, err := r.U1()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading tag for constant pool entry %d: %w", i, err)
		}

		entry := ConstantPoolEntry{Tag: ConstantTag(tag)}
		switch entry.Tag {
		case TagUtf8:
			length, err := r.U2()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d Utf8 length: %w", i, err)
			}
			raw, err := r.Bytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d Utf8 payload: %w", i, err)
			}
			s, err := decodeModifiedUTF8(raw)
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d: %w", i, err)
			}
			entry.UTF8Value = s
		case TagInteger, TagFloat:
			v, err := r.U4()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d %s bits: %w", i, entry.Tag, err)
			}
			entry.Bits32 = v
		case TagLong, TagDouble:
			v, err := r.U8()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d %s bits: %w", i, entry.Tag, err)
			}
			entry.Bits64 = v
		case TagClass:
			idx, err := r.U2()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d Class.name_index: %w", i, err)
			}
			entry.NameIndex = idx
		case TagString:
			idx, err := r.U2()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d String.string_index: %w", i, err)
			}
			entry.NameIndex = idx
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			classIdx, err := r.U2()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d %s.class_index: %w", i, entry.Tag, err)
			}
			ntIdx, err := r.U2()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d %s.name_and_type_index: %w", i, entry.Tag, err)
			}
			entry.ClassIndex = classIdx
			entry.NameAndTypeIndex = ntIdx
		case TagNameAndType:
			nameIdx, err := r.U2()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d NameAndType.name_index: %w", i, err)
			}
			descIdx, err := r.U2()
			if err != nil {
				return nil, fmt.Errorf("classfile: entry %d NameAndType.descriptor_index: %w", i, err)
			}
			entry.NameIndex = nameIdx
			entry.DescriptorIndex = descIdx
		case TagMethodHandle:
			// reference_kind (u1) + reference_index (u2): opaque for this core.
			if _, err := r.U1(); err != nil {
				return nil, fmt.Errorf("classfile: entry %d MethodHandle.reference_kind: %w", i, err)
			}
			if _, err := r.U2(); err != nil {
				return nil, fmt.Errorf("classfile: entry %d MethodHandle.reference_index: %w", i, err)
			}
		case TagMethodType:
			if _, err := r.U2(); err != nil {
				return nil, fmt.Errorf("classfile: entry %d MethodType.descriptor_index: %w", i, err)
			}
		case TagInvokeDynamic:
			// bootstrap_method_attr_index (u2) + name_and_type_index (u2): opaque.
			if _, err := r.U2(); err != nil {
				return nil, fmt.Errorf("classfile: entry %d InvokeDynamic.bootstrap_method_attr_index: %w", i, err)
			}
			if _, err := r.U2(); err != nil {
				return nil, fmt.Errorf("classfile: entry %d InvokeDynamic.name_and_type_index: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("%w: tag %d at entry %d", ErrUnknownConstantTag, tag, i)
		}

		cp.entries[i] = entry

		// Long and Double take two pool slots; the second is left as the
		// zero-value Reserved sentinel and the loop index advances past it
		// so that subsequent indices line up with their declared position.
		if entry.Tag == TagLong || entry.Tag == TagDouble {
			i++
		}
	}

	logger.Debugf("constant pool: decoded %d slots", count)
	return cp, nil
}

// ResolveUTF8 returns a human-readable string for index, per the
// resolution protocol in §4.2: Utf8 entries return their stored string,
// Class/String entries recurse through their referenced index, Fieldref/
// Methodref/InterfaceMethodref format as "class.nameAndType", and
// NameAndType formats as "name, descriptor". Any other entry kind
// (Integer, Float, Long, Double, MethodHandle, MethodType, InvokeDynamic,
// Reserved) is not resolvable to a string and fails.
func (cp *ConstantPool) ResolveUTF8(index uint16) (string, error) {
	return cp.resolve(index, 0)
}

func (cp *ConstantPool) resolve(index uint16, depth int) (string, error) {
	if depth > maxResolveDepth {
		return "", fmt.Errorf("%w: at index %d", ErrResolveDepthExceeded, index)
	}

	entry, err := cp.At(index)
	if err != nil {
		return "", err
	}

	switch entry.Tag {
	case TagUtf8:
		return entry.UTF8Value, nil
	case TagClass:
		return cp.resolve(entry.NameIndex, depth+1)
	case TagString:
		return cp.resolve(entry.NameIndex, depth+1)
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		class, err := cp.resolve(entry.ClassIndex, depth+1)
		if err != nil {
			return "", err
		}
		nameAndType, err := cp.resolve(entry.NameAndTypeIndex, depth+1)
		if err != nil {
			return "", err
		}
		return class + "." + nameAndType, nil
	case TagNameAndType:
		name, err := cp.resolve(entry.NameIndex, depth+1)
		if err != nil {
			return "", err
		}
		desc, err := cp.resolve(entry.DescriptorIndex, depth+1)
		if err != nil {
			return "", err
		}
		return name + ", " + desc, nil
	default:
		return "", fmt.Errorf("%w: index %d is a %s entry", ErrUnresolvableConstant, index, entry.Tag)
	}
}

// ResolveClassUTF8 is a convenience for the common "Class entry at index"
// case, requiring the entry at index actually be TagClass.
func (cp *ConstantPool) ResolveClassUTF8(index uint16) (string, error) {
	entry, err := cp.At(index)
	if err != nil {
		return "", err
	}
	if entry.Tag != TagClass {
		return "", fmt.Errorf("%w: index %d is %s, want Class", ErrWrongConstantKind, index, entry.Tag)
	}
	return cp.ResolveUTF8(index)
}

// ResolveUTF8Strict requires the entry at index to be a Utf8 entry and
// returns its stored value directly, without recursive resolution. Used
// where the spec requires a direct Utf8 reference (e.g. a name_index on a
// field or method), rejecting a file where that index points elsewhere.
func (cp *ConstantPool) ResolveUTF8Strict(index uint16) (string, error) {
	entry, err := cp.At(index)
	if err != nil {
		return "", err
	}
	if entry.Tag != TagUtf8 {
		return "", fmt.Errorf("%w: index %d is %s, want Utf8", ErrWrongConstantKind, index, entry.Tag)
	}
	return entry.UTF8Value, nil
}
