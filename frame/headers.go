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

// HeadersPayload is the HEADERS (0x1) frame payload. Fragment is the
// opaque HPACK header block fragment; it is handed to hpack.Decode (or
// assembled across subsequent CONTINUATION frames) by the caller.
type HeadersPayload struct {
	Padded           bool
	PadLength        uint8
	HasPriority      bool
	Exclusive        bool
	StreamDependency uint32
	Weight           uint8
	Fragment         []byte
}

func (p *HeadersPayload) Type() Type { return TypeHeaders }

func (p *HeadersPayload) EncodeTo(dst *octetbuf.Buf) {
	if p.Padded {
		dst.AppendByte(p.PadLength)
	}
	if p.HasPriority {
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
	dst.Append(p.Fragment)
	if p.Padded {
		dst.Append(make([]byte, p.PadLength))
	}
}

// DecodeHeaders parses a HEADERS frame payload. The fragment is whatever
// remains after consuming the optional Pad Length octet, the optional
// 5-byte PRIORITY fields, and the trailing padding bytes -- all three are
// excluded from Fragment regardless of which combination is present.
func DecodeHeaders(flags Flags, body []byte) (*HeadersPayload, error) {
	p := &HeadersPayload{
		Padded:      flags.Has(FlagPadded),
		HasPriority: flags.Has(FlagPriority),
	}

	b := body
	if p.Padded {
		if len(b) < 1 {
			return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "HEADERS frame too short for pad length")
		}
		p.PadLength = b[0]
		b = b[1:]
	}

	if p.HasPriority {
		exclusive, dep, weight, n, err := decodePriorityFields(b)
		if err != nil {
			return nil, err
		}
		p.Exclusive, p.StreamDependency, p.Weight = exclusive, dep, weight
		b = b[n:]
	}

	if int(p.PadLength) > len(b) {
		return nil, h2err.New(pkgFrame, h2err.ProtocolError, "HEADERS pad length %d exceeds remaining payload", p.PadLength)
	}
	p.Fragment = b[:len(b)-int(p.PadLength)]

	return p, nil
}
