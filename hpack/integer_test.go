// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hpack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packetd/h2codec/internal/octetbuf"
)

// TestEncodeIntegerRFCExamples checks the three worked examples from
// RFC 7541 §C.1.
func TestEncodeIntegerRFCExamples(t *testing.T) {
	tests := []struct {
		name      string
		value     uint64
		prefixLen uint8
		pad       byte
		want      []byte
	}{
		{name: "C.1.1 10 fits in 5-bit prefix", value: 10, prefixLen: 5, pad: 0, want: []byte{0x0a}},
		{name: "C.1.2 1337 needs continuation", value: 1337, prefixLen: 5, pad: 0, want: []byte{0x1f, 0x9a, 0x0a}},
		{name: "C.1.3 42 fits in 8-bit prefix", value: 42, prefixLen: 8, pad: 0, want: []byte{0x2a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := octetbuf.New()
			encodeInteger(buf, tt.value, tt.prefixLen, tt.pad)
			assert.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 10, 126, 127, 128, 1337, 65535, 1 << 20, 1<<32 - 1}
	for prefixLen := uint8(1); prefixLen <= 8; prefixLen++ {
		for _, v := range values {
			buf := octetbuf.New()
			encodeInteger(buf, v, prefixLen, 0)
			offset := 0
			got, ok := decodeInteger(buf.Bytes(), &offset, prefixLen)
			assert.True(t, ok)
			assert.Equal(t, v, got)
			assert.Equal(t, buf.Length(), offset)
		}
	}
}

func TestDecodeIntegerInvalidPrefixLen(t *testing.T) {
	offset := 0
	_, ok := decodeInteger([]byte{0xff}, &offset, 0)
	assert.False(t, ok)

	offset = 0
	_, ok = decodeInteger([]byte{0xff}, &offset, 9)
	assert.False(t, ok)
}

func TestDecodeIntegerTruncatedContinuation(t *testing.T) {
	// 5-bit prefix all-ones marker with no continuation byte following.
	offset := 0
	_, ok := decodeInteger([]byte{0x1f}, &offset, 5)
	assert.False(t, ok)

	// Continuation byte present but its high bit demands another octet
	// that never arrives.
	offset = 0
	_, ok = decodeInteger([]byte{0x1f, 0x80}, &offset, 5)
	assert.False(t, ok)
}

func TestDecodeIntegerOffsetNotMasked(t *testing.T) {
	// Regression test for the lhttp2 `buff.Get(offset & 127)` bug:
	// continuation bytes must be read at their true offset, so an offset
	// past 127 must still decode correctly.
	buf := octetbuf.New()
	buf.Append(make([]byte, 130))
	start := buf.Length()
	encodeInteger(buf, 1337, 5, 0)

	offset := start
	got, ok := decodeInteger(buf.Bytes(), &offset, 5)
	assert.True(t, ok)
	assert.Equal(t, uint64(1337), got)
}
