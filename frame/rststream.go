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

// rstStreamPayloadLength is the fixed RFC 7540 §6.4 RST_STREAM payload
// size. This codec emits exactly the required 4 bytes rather than an
// over-allocated buffer.
const rstStreamPayloadLength = 4

// RSTStreamPayload is the RST_STREAM (0x3) frame payload: an error code.
type RSTStreamPayload struct {
	ErrorCode h2err.Code
}

func (p *RSTStreamPayload) Type() Type { return TypeRSTStream }

func (p *RSTStreamPayload) EncodeTo(dst *octetbuf.Buf) {
	v := uint32(p.ErrorCode)
	dst.AppendByte(byte(v >> 24))
	dst.AppendByte(byte(v >> 16))
	dst.AppendByte(byte(v >> 8))
	dst.AppendByte(byte(v))
}

// DecodeRSTStream parses an RST_STREAM frame payload. The payload length
// MUST be exactly 4 octets.
func DecodeRSTStream(body []byte) (*RSTStreamPayload, error) {
	if len(body) != rstStreamPayloadLength {
		return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "RST_STREAM payload must be %d bytes, got %d", rstStreamPayloadLength, len(body))
	}
	v := uint32(body[0])<<24 | uint32(body[1])<<16 | uint32(body[2])<<8 | uint32(body[3])
	return &RSTStreamPayload{ErrorCode: h2err.Code(v)}, nil
}
