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

// goAwayMinPayloadLength is the minimum RFC 7540 §6.8 GOAWAY payload size
// (Last-Stream-ID + Error Code, no debug data).
const goAwayMinPayloadLength = 8

// GoAwayPayload is the GOAWAY (0x7) frame payload: a connection shutdown
// notice.
type GoAwayPayload struct {
	LastStreamID        uint32
	ErrorCode           h2err.Code
	AdditionalDebugData []byte
}

func (p *GoAwayPayload) Type() Type { return TypeGoAway }

func (p *GoAwayPayload) EncodeTo(dst *octetbuf.Buf) {
	sid := p.LastStreamID & streamIDMask
	dst.AppendByte(byte(sid >> 24))
	dst.AppendByte(byte(sid >> 16))
	dst.AppendByte(byte(sid >> 8))
	dst.AppendByte(byte(sid))

	code := uint32(p.ErrorCode)
	dst.AppendByte(byte(code >> 24))
	dst.AppendByte(byte(code >> 16))
	dst.AppendByte(byte(code >> 8))
	dst.AppendByte(byte(code))

	dst.Append(p.AdditionalDebugData)
}

// DecodeGoAway parses a GOAWAY frame payload. The payload length MUST be
// at least 8 octets; anything past that is additional debug data.
func DecodeGoAway(body []byte) (*GoAwayPayload, error) {
	if len(body) < goAwayMinPayloadLength {
		return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "GOAWAY payload must be at least %d bytes, got %d", goAwayMinPayloadLength, len(body))
	}

	sid := (uint32(body[0])<<24 | uint32(body[1])<<16 | uint32(body[2])<<8 | uint32(body[3])) & streamIDMask
	code := uint32(body[4])<<24 | uint32(body[5])<<16 | uint32(body[6])<<8 | uint32(body[7])

	var debug []byte
	if len(body) > goAwayMinPayloadLength {
		debug = body[goAwayMinPayloadLength:]
	}

	return &GoAwayPayload{LastStreamID: sid, ErrorCode: h2err.Code(code), AdditionalDebugData: debug}, nil
}
