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

// pingPayloadLength is the fixed RFC 7540 §6.7 PING payload size.
const pingPayloadLength = 8

// PingPayload is the PING (0x6) frame payload: 8 octets of opaque data,
// echoed back verbatim when ACKed.
type PingPayload struct {
	OpaqueData [pingPayloadLength]byte
	Ack        bool
}

func (p *PingPayload) Type() Type { return TypePing }

func (p *PingPayload) EncodeTo(dst *octetbuf.Buf) {
	dst.Append(p.OpaqueData[:])
}

// DecodePing parses a PING frame payload. The payload length MUST be
// exactly 8 octets.
func DecodePing(flags Flags, body []byte) (*PingPayload, error) {
	if len(body) != pingPayloadLength {
		return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "PING payload must be %d bytes, got %d", pingPayloadLength, len(body))
	}
	p := &PingPayload{Ack: flags.Has(FlagAck)}
	copy(p.OpaqueData[:], body)
	return p, nil
}
