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

import "github.com/packetd/h2codec/internal/octetbuf"

const pkgInteger = "hpack/integer"

// prefixMax[n] is 2^n - 1, the largest value an n-bit prefix can hold
// before continuation bytes are required.
var prefixMax = [9]uint32{0, 1, 3, 7, 15, 31, 63, 127, 255}

// maxContinuationOctets bounds decodeInteger's continuation walk: a 32-bit
// value needs at most 5 continuation octets (7 bits each).
const maxContinuationOctets = 5

// encodeInteger appends the HPACK prefix-N integer encoding of i to dst.
// pad supplies the high bits to preserve alongside the prefix (the
// representation-kind marker bits from RFC 7541 §6.1-6.2). prefixLen must
// be in [1,8]; out-of-range values are a caller bug and produce no output.
func encodeInteger(dst *octetbuf.Buf, i uint64, prefixLen uint8, pad byte) {
	if prefixLen < 1 || prefixLen > 8 {
		return
	}
	max := uint64(prefixMax[prefixLen])
	mask := byte(prefixMax[prefixLen])

	if i < max {
		dst.AppendByte((pad &^ mask) | byte(i))
		return
	}

	dst.AppendByte((pad &^ mask) | byte(max))
	i -= max
	for i >= 128 {
		dst.AppendByte(byte(i%128) | 0x80)
		i /= 128
	}
	dst.AppendByte(byte(i))
}

// decodeInteger reads an HPACK prefix-N integer starting at *offset,
// advancing *offset past the bytes it consumes. prefixLen must be in
// [1,8]. Returns (0, false) if prefixLen is invalid, the buffer is
// truncated mid-continuation, or more than maxContinuationOctets
// continuation bytes would be required.
func decodeInteger(buf []byte, offset *int, prefixLen uint8) (uint64, bool) {
	if prefixLen < 1 || prefixLen > 8 {
		return 0, false
	}
	if *offset >= len(buf) {
		return 0, false
	}
	mask := uint64(prefixMax[prefixLen])
	i := uint64(buf[*offset]) & mask
	*offset++

	if i < mask {
		return i, true
	}

	var m uint64 = 1
	for n := 0; ; n++ {
		if n >= maxContinuationOctets {
			return 0, false
		}
		if *offset >= len(buf) {
			return 0, false
		}
		b := buf[*offset]
		*offset++
		i += uint64(b&0x7f) * m
		m *= 128
		if b&0x80 == 0 {
			break
		}
	}
	return i, true
}
