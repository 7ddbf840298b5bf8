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

package frame

import (
	"github.com/packetd/h2codec/h2err"
	"github.com/packetd/h2codec/internal/octetbuf"
)

// priorityPayloadLength is the fixed RFC 7540 §6.2 PRIORITY payload size.
// This codec emits exactly the required 5 bytes rather than an
// over-allocated buffer.
const priorityPayloadLength = 5

// PriorityPayload is the PRIORITY (0x2) frame payload: a stream dependency
// declaration.
type PriorityPayload struct {
	Exclusive        bool
	StreamDependency uint32
	Weight           uint8
}

func (p *PriorityPayload) Type() Type { return TypePriority }

func (p *PriorityPayload) EncodeTo(dst *octetbuf.Buf) {
	dep := p.StreamDependency & streamIDMask
	if p.Exclusive {
		dep |= 0x80000000
	}
	dst.AppendByte(byte(dep >> 24))
	dst.AppendByte(byte(dep >> 16))
	dst.AppendByte(byte(dep >> 8))
	dst.AppendByte(byte(dep))
	dst.AppendByte(p.Weight)
}

// DecodePriority parses a PRIORITY frame payload. The payload length MUST
// be exactly 5 octets.
func DecodePriority(body []byte) (*PriorityPayload, error) {
	if len(body) != priorityPayloadLength {
		return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "PRIORITY payload must be %d bytes, got %d", priorityPayloadLength, len(body))
	}

	raw := uint32(body[0])<<24 | uint32(body[1])<<16 | uint32(body[2])<<8 | uint32(body[3])
	return &PriorityPayload{
		Exclusive:        raw&0x80000000 != 0,
		StreamDependency: raw & streamIDMask,
		Weight:           body[4],
	}, nil
}

// decodePriorityFields reads an embedded E+Stream Dependency+Weight block
// (as carried inline in HEADERS when the PRIORITY flag is set) from the
// front of body, returning the fields and the number of bytes consumed.
func decodePriorityFields(body []byte) (exclusive bool, dep uint32, weight uint8, n int, err error) {
	if len(body) < priorityPayloadLength {
		return false, 0, 0, 0, h2err.New(pkgFrame, h2err.FrameSizeError, "truncated PRIORITY fields")
	}
	raw := uint32(body[0])<<24 | uint32(body[1])<<16 | uint32(body[2])<<8 | uint32(body[3])
	return raw&0x80000000 != 0, raw & streamIDMask, body[4], priorityPayloadLength, nil
}
