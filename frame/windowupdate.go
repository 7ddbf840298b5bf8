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

// windowUpdatePayloadLength is the fixed RFC 7540 §6.9 WINDOW_UPDATE
// payload size.
const windowUpdatePayloadLength = 4

// WindowUpdatePayload is the WINDOW_UPDATE (0x8) frame payload: a flow
// control window increment. The codec preserves the value verbatim; a
// zero increment is a protocol violation that enforcement -- not this
// codec -- must reject.
type WindowUpdatePayload struct {
	WindowSizeIncrement uint32
}

func (p *WindowUpdatePayload) Type() Type { return TypeWindowUpdate }

func (p *WindowUpdatePayload) EncodeTo(dst *octetbuf.Buf) {
	v := p.WindowSizeIncrement & streamIDMask
	dst.AppendByte(byte(v >> 24))
	dst.AppendByte(byte(v >> 16))
	dst.AppendByte(byte(v >> 8))
	dst.AppendByte(byte(v))
}

// DecodeWindowUpdate parses a WINDOW_UPDATE frame payload. The payload
// length MUST be exactly 4 octets.
func DecodeWindowUpdate(body []byte) (*WindowUpdatePayload, error) {
	if len(body) != windowUpdatePayloadLength {
		return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "WINDOW_UPDATE payload must be %d bytes, got %d", windowUpdatePayloadLength, len(body))
	}
	v := (uint32(body[0])<<24 | uint32(body[1])<<16 | uint32(body[2])<<8 | uint32(body[3])) & streamIDMask
	return &WindowUpdatePayload{WindowSizeIncrement: v}, nil
}
