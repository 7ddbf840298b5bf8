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

// DataPayload is the DATA (0x0) frame payload: application data, optionally
// padded.
type DataPayload struct {
	Data      []byte
	PadLength uint8
	Padded    bool
}

func (p *DataPayload) Type() Type { return TypeData }

func (p *DataPayload) EncodeTo(dst *octetbuf.Buf) {
	if p.Padded {
		dst.AppendByte(p.PadLength)
	}
	dst.Append(p.Data)
	if p.Padded {
		dst.Append(make([]byte, p.PadLength))
	}
}

// DecodeData parses a DATA frame payload. The PADDED flag governs whether a
// Pad Length octet precedes the data; the returned Data excludes padding.
func DecodeData(flags Flags, body []byte) (*DataPayload, error) {
	padded := flags.Has(FlagPadded)

	b := body
	var padLen uint8
	if padded {
		if len(b) < 1 {
			return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "DATA frame too short for pad length")
		}
		padLen = b[0]
		b = b[1:]
	}
	if int(padLen) > len(b) {
		return nil, h2err.New(pkgFrame, h2err.ProtocolError, "DATA pad length %d exceeds payload", padLen)
	}
	data := b[:len(b)-int(padLen)]

	return &DataPayload{Data: data, PadLength: padLen, Padded: padded}, nil
}
