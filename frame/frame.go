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

// Package frame implements the RFC 7540 §4-§6 frame codec: the fixed
// 9-octet frame header and the ten frame payload types. Encode produces
// bit-exact wire bytes; Decode never reads past the Length a frame header
// declares.
package frame

import (
	"github.com/packetd/h2codec/h2err"
	"github.com/packetd/h2codec/internal/octetbuf"
	"github.com/packetd/h2codec/metrics"
)

const pkgFrame = "frame"

// Type is the 8-bit RFC 7540 §11.2 frame type.
type Type uint8

const (
	TypeData         Type = 0x0
	TypeHeaders      Type = 0x1
	TypePriority     Type = 0x2
	TypeRSTStream    Type = 0x3
	TypeSettings     Type = 0x4
	TypePushPromise  Type = 0x5
	TypePing         Type = 0x6
	TypeGoAway       Type = 0x7
	TypeWindowUpdate Type = 0x8
	TypeContinuation Type = 0x9

	// maxType is the highest frame type this codec recognizes; anything
	// past it is a ProtocolError on decode.
	maxType = TypeContinuation
)

func (t Type) String() string {
	switch t {
	case TypeData:
		return "DATA"
	case TypeHeaders:
		return "HEADERS"
	case TypePriority:
		return "PRIORITY"
	case TypeRSTStream:
		return "RST_STREAM"
	case TypeSettings:
		return "SETTINGS"
	case TypePushPromise:
		return "PUSH_PROMISE"
	case TypePing:
		return "PING"
	case TypeGoAway:
		return "GOAWAY"
	case TypeWindowUpdate:
		return "WINDOW_UPDATE"
	case TypeContinuation:
		return "CONTINUATION"
	default:
		return "UNKNOWN"
	}
}

// Flags is the 8-bit RFC 7540 §4.1 frame flags field. Bit 0x01 is
// overloaded: ACK for SETTINGS/PING, END_STREAM for DATA/HEADERS.
type Flags uint8

const (
	FlagEndStream  Flags = 0x1
	FlagAck        Flags = 0x1
	FlagEndHeaders Flags = 0x4
	FlagPadded     Flags = 0x8
	FlagPriority   Flags = 0x20
)

// Has reports whether all bits of want are set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

const (
	// headerLength is the fixed RFC 7540 §4.1 frame header size.
	headerLength = 9

	// maxPayloadLength is the largest value the 24-bit Length field can
	// hold.
	maxPayloadLength = 0xFFFFFF

	// streamIDMask strips the reserved bit (R) from the 32-bit stream
	// identifier field.
	streamIDMask = 0x7FFFFFFF
)

// Header is the fixed 9-octet frame header shared by every frame type.
type Header struct {
	Length   uint32
	Type     Type
	Flags    Flags
	StreamID uint32
}

// EncodeHeader appends the 9-octet wire encoding of h to dst. The reserved
// bit is always written as 0.
func EncodeHeader(dst *octetbuf.Buf, h Header) {
	dst.AppendByte(byte(h.Length >> 16))
	dst.AppendByte(byte(h.Length >> 8))
	dst.AppendByte(byte(h.Length))
	dst.AppendByte(byte(h.Type))
	dst.AppendByte(byte(h.Flags))
	sid := h.StreamID & streamIDMask
	dst.AppendByte(byte(sid >> 24))
	dst.AppendByte(byte(sid >> 16))
	dst.AppendByte(byte(sid >> 8))
	dst.AppendByte(byte(sid))
}

// DecodeHeader parses the 9-octet frame header from the front of b. The
// reserved bit is extracted and discarded: it MUST be
// ignored on receive.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < headerLength {
		return Header{}, h2err.New(pkgFrame, h2err.ProtocolError, "short frame header: %d bytes", len(b))
	}

	typ := Type(b[3])
	if typ > maxType {
		return Header{}, h2err.New(pkgFrame, h2err.ProtocolError, "unknown frame type 0x%x", b[3])
	}

	length := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	streamID := (uint32(b[5])<<24 | uint32(b[6])<<16 | uint32(b[7])<<8 | uint32(b[8])) & streamIDMask

	return Header{
		Length:   length,
		Type:     typ,
		Flags:    Flags(b[4]),
		StreamID: streamID,
	}, nil
}

// Payload is implemented by each of the ten frame payload types. EncodeTo
// appends the wire encoding of the payload body (excluding the 9-octet
// frame header) to dst.
type Payload interface {
	Type() Type
	EncodeTo(dst *octetbuf.Buf)
}

// Frame pairs a decoded/constructed Header with its typed Payload.
type Frame struct {
	Header  Header
	Payload Payload
}

// EncodeFrame appends the full wire encoding (header + payload) of f to
// dst, computing Header.Length from the encoded payload body. ACK is set
// from SettingsPayload.Ack and PingPayload.Ack, and PADDED from
// DataPayload.Padded; the PADDED and PRIORITY flags of HEADERS and
// PUSH_PROMISE frames are taken from f.Header.Flags as given.
func EncodeFrame(dst *octetbuf.Buf, f *Frame) error {
	body := octetbuf.New()
	f.Payload.EncodeTo(body)
	if body.Length() > maxPayloadLength {
		return h2err.New(pkgFrame, h2err.FrameSizeError, "encoded payload %d exceeds maximum frame length", body.Length())
	}

	h := f.Header
	h.Type = f.Payload.Type()
	h.Length = uint32(body.Length())
	switch p := f.Payload.(type) {
	case *DataPayload:
		if p.Padded {
			h.Flags |= FlagPadded
		}
	case *SettingsPayload:
		if p.Ack {
			h.Flags |= FlagAck
		}
	case *PingPayload:
		if p.Ack {
			h.Flags |= FlagAck
		}
	}
	EncodeHeader(dst, h)
	dst.AppendBuf(body)
	metrics.FrameEncoded(h.Type.String())
	return nil
}

// DecodeFrame parses one complete frame (header + payload) from the front
// of b. It returns the frame and the number of bytes consumed. It does not
// read past the bytes the header's Length field declares.
func DecodeFrame(b []byte) (*Frame, int, error) {
	h, err := DecodeHeader(b)
	if err != nil {
		metrics.FrameDecodeError(h2err.CodeOf(err).String())
		return nil, 0, err
	}

	total := headerLength + int(h.Length)
	if len(b) < total {
		err := h2err.New(pkgFrame, h2err.ProtocolError, "truncated frame: need %d bytes, have %d", total, len(b))
		metrics.FrameDecodeError(h2err.ProtocolError.String())
		return nil, 0, err
	}
	body := b[headerLength:total]

	payload, err := decodePayload(h, body)
	if err != nil {
		metrics.FrameDecodeError(h2err.CodeOf(err).String())
		return nil, 0, err
	}

	metrics.FrameDecoded(h.Type.String())
	return &Frame{Header: h, Payload: payload}, total, nil
}

func decodePayload(h Header, body []byte) (Payload, error) {
	switch h.Type {
	case TypeData:
		return DecodeData(h.Flags, body)
	case TypeHeaders:
		return DecodeHeaders(h.Flags, body)
	case TypePriority:
		return DecodePriority(body)
	case TypeRSTStream:
		return DecodeRSTStream(body)
	case TypeSettings:
		return DecodeSettingsFrame(h.Flags, body)
	case TypePushPromise:
		return DecodePushPromise(h.Flags, body)
	case TypePing:
		return DecodePing(h.Flags, body)
	case TypeGoAway:
		return DecodeGoAway(body)
	case TypeWindowUpdate:
		return DecodeWindowUpdate(body)
	case TypeContinuation:
		return DecodeContinuation(body), nil
	default:
		return nil, h2err.New(pkgFrame, h2err.ProtocolError, "unknown frame type 0x%x", byte(h.Type))
	}
}
