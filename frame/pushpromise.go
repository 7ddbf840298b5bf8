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

// PushPromisePayload is the PUSH_PROMISE (0x5) frame payload.
type PushPromisePayload struct {
	Padded           bool
	PadLength        uint8
	PromisedStreamID uint32
	Fragment         []byte
}

func (p *PushPromisePayload) Type() Type { return TypePushPromise }

func (p *PushPromisePayload) EncodeTo(dst *octetbuf.Buf) {
	if p.Padded {
		dst.AppendByte(p.PadLength)
	}
	sid := p.PromisedStreamID & streamIDMask
	dst.AppendByte(byte(sid >> 24))
	dst.AppendByte(byte(sid >> 16))
	dst.AppendByte(byte(sid >> 8))
	dst.AppendByte(byte(sid))
	dst.Append(p.Fragment)
	if p.Padded {
		dst.Append(make([]byte, p.PadLength))
	}
}

// DecodePushPromise parses a PUSH_PROMISE frame payload.
func DecodePushPromise(flags Flags, body []byte) (*PushPromisePayload, error) {
	p := &PushPromisePayload{Padded: flags.Has(FlagPadded)}

	b := body
	if p.Padded {
		if len(b) < 1 {
			return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "PUSH_PROMISE frame too short for pad length")
		}
		p.PadLength = b[0]
		b = b[1:]
	}

	if len(b) < 4 {
		return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "PUSH_PROMISE frame too short for promised stream id")
	}
	p.PromisedStreamID = (uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])) & streamIDMask
	b = b[4:]

	if int(p.PadLength) > len(b) {
		return nil, h2err.New(pkgFrame, h2err.ProtocolError, "PUSH_PROMISE pad length %d exceeds remaining payload", p.PadLength)
	}
	p.Fragment = b[:len(b)-int(p.PadLength)]

	return p, nil
}
