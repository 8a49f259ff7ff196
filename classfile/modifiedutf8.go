// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package classfile

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// decodeModifiedUTF8 turns the modified-UTF-8 payload of a Utf8 constant
// pool entry into a Go string.
//
// Modified UTF-8 (JVM spec §4.4.7) differs from standard UTF-8 in two
// ways: NUL is encoded as the two-byte sequence 0xC0 0x80, and characters
// outside the Basic Multilingual Plane are encoded as a pair of three-byte
// sequences carrying a UTF-16 surrogate pair, rather than as one four-byte
// sequence. This function first walks the byte sequence extracting raw
// UTF-16 code units (one iteration per 1/2/3-byte group, without yet
// joining surrogate pairs), then — exactly as the teacher's
// DecodeUTF16String turns raw UTF-16 bytes into a Go string — hands the
// big-endian encoding of those code units to
// golang.org/x/text/encoding/unicode's UTF-16 decoder, which performs the
// surrogate-pair join.
func decodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c&0x80 == 0x00: // 0xxxxxxx
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0: // 110xxxxx 10xxxxxx
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", fmt.Errorf("classfile: truncated modified-UTF-8 sequence at byte %d", i)
			}
			v := (uint16(c&0x1F) << 6) | uint16(b[i+1]&0x3F)
			units = append(units, v)
			i += 2
		case c&0xF0 == 0xE0: // 1110xxxx 10xxxxxx 10xxxxxx
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", fmt.Errorf("classfile: truncated modified-UTF-8 sequence at byte %d", i)
			}
			v := (uint16(c&0x0F) << 12) | (uint16(b[i+1]&0x3F) << 6) | uint16(b[i+2]&0x3F)
			units = append(units, v)
			i += 3
		default:
			return "", fmt.Errorf("classfile: invalid modified-UTF-8 leading byte 0x%02x at byte %d", c, i)
		}
	}

	be := make([]byte, len(units)*2)
	for idx, u := range units {
		be[idx*2] = byte(u >> 8)
		be[idx*2+1] = byte(u)
	}

	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(be)
	if err != nil {
		return "", fmt.Errorf("classfile: decoding modified-UTF-8 payload: %w", err)
	}
	return string(out), nil
}
