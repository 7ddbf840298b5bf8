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
	"github.com/packetd/h2codec/settings"
)

// settingsParamLength is the wire size of one (id, value) SETTINGS pair,
// RFC 7540 §6.5.
const settingsParamLength = 6

// SettingsPayload is the SETTINGS (0x4) frame payload: either an empty ACK
// or a sequence of (id, value) parameter pairs.
type SettingsPayload struct {
	Ack    bool
	Params []settings.Param
}

func (p *SettingsPayload) Type() Type { return TypeSettings }

func (p *SettingsPayload) EncodeTo(dst *octetbuf.Buf) {
	if p.Ack {
		return
	}
	for _, param := range p.Params {
		dst.AppendByte(byte(param.ID >> 8))
		dst.AppendByte(byte(param.ID))
		dst.AppendByte(byte(param.Value >> 24))
		dst.AppendByte(byte(param.Value >> 16))
		dst.AppendByte(byte(param.Value >> 8))
		dst.AppendByte(byte(param.Value))
	}
}

// DecodeSettingsFrame parses a SETTINGS frame payload. If ACK is set, the
// payload MUST be empty. Otherwise its length MUST be a multiple of 6;
// every pair, including unknown parameter ids, is kept in Params (ApplyTo
// skips the unknown ones) and MAX_FRAME_SIZE is clamped per
// settings.ClampMaxFrameSize.
func DecodeSettingsFrame(flags Flags, body []byte) (*SettingsPayload, error) {
	ack := flags.Has(FlagAck)
	if ack {
		if len(body) != 0 {
			return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "SETTINGS ACK payload must be empty, got %d bytes", len(body))
		}
		return &SettingsPayload{Ack: true}, nil
	}

	if len(body)%settingsParamLength != 0 {
		return nil, h2err.New(pkgFrame, h2err.FrameSizeError, "SETTINGS payload length %d is not a multiple of %d", len(body), settingsParamLength)
	}

	var params []settings.Param
	for i := 0; i < len(body); i += settingsParamLength {
		id := settings.ID(uint16(body[i])<<8 | uint16(body[i+1]))
		value := uint32(body[i+2])<<24 | uint32(body[i+3])<<16 | uint32(body[i+4])<<8 | uint32(body[i+5])
		if id == settings.MaxFrameSize {
			value = settings.ClampMaxFrameSize(value)
		}
		params = append(params, settings.Param{ID: id, Value: value})
	}

	return &SettingsPayload{Params: params}, nil
}

// ApplyTo folds every parameter in p (ignoring unknown ids) into s.
func (p *SettingsPayload) ApplyTo(s *settings.Settings) {
	for _, param := range p.Params {
		s.Apply(param)
	}
}
