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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/h2codec/internal/octetbuf"
)

// TestPingRoundTrip is scenario S1.
func TestPingRoundTrip(t *testing.T) {
	want := []byte{
		0x00, 0x00, 0x08, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}

	f := &Frame{
		Header: Header{StreamID: 0},
		Payload: &PingPayload{
			OpaqueData: [8]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		},
	}

	buf := octetbuf.New()
	require.NoError(t, EncodeFrame(buf, f))
	assert.Equal(t, want, buf.Bytes())

	got, n, err := DecodeFrame(want)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)
	assert.Equal(t, TypePing, got.Header.Type)
	assert.Equal(t, f.Payload.(*PingPayload).OpaqueData, got.Payload.(*PingPayload).OpaqueData)
}

// TestSettingsACKRoundTrip is scenario S2.
func TestSettingsACKRoundTrip(t *testing.T) {
	want := []byte{0x00, 0x00, 0x00, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00}

	f := &Frame{Payload: &SettingsPayload{Ack: true}}
	buf := octetbuf.New()
	require.NoError(t, EncodeFrame(buf, f))
	assert.Equal(t, want, buf.Bytes())

	got, n, err := DecodeFrame(want)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)
	sp := got.Payload.(*SettingsPayload)
	assert.True(t, sp.Ack)
	assert.Empty(t, sp.Params)
}

// TestHeadersWithPriorityAndPadding is scenario S6. The payload is exactly
// 22 bytes: 1 (pad length) + 5 (priority fields) + 12 (fragment) + 4
// (padding).
func TestHeadersWithPriorityAndPadding(t *testing.T) {
	header := []byte{0x00, 0x00, 0x16, 0x01, 0x2c, 0x00, 0x00, 0x00, 0x01}
	payload := make([]byte, 0, 22)
	payload = append(payload, 0x04)                         // pad length
	payload = append(payload, 0x80, 0x00, 0x00, 0x0b, 0x0f) // priority
	fragment := []byte{0x82, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	payload = append(payload, fragment...)
	payload = append(payload, 0, 0, 0, 0) // padding
	require.Len(t, payload, 22)
	wire := append(append([]byte{}, header...), payload...)

	f, n, err := DecodeFrame(wire)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
	assert.Equal(t, uint32(22), f.Header.Length)
	assert.Equal(t, TypeHeaders, f.Header.Type)
	assert.True(t, f.Header.Flags.Has(FlagEndHeaders))
	assert.True(t, f.Header.Flags.Has(FlagPadded))
	assert.True(t, f.Header.Flags.Has(FlagPriority))
	assert.Equal(t, uint32(1), f.Header.StreamID)

	hp := f.Payload.(*HeadersPayload)
	assert.Equal(t, uint8(4), hp.PadLength)
	assert.True(t, hp.Exclusive)
	assert.Equal(t, uint32(11), hp.StreamDependency)
	assert.Equal(t, uint8(15), hp.Weight)
	assert.Equal(t, fragment, hp.Fragment)
}

func TestReservedBitMaskedOutOnDecode(t *testing.T) {
	header := []byte{0x00, 0x00, 0x00, 0x06, 0x00, 0x80, 0x00, 0x00, 0x01}
	h, err := DecodeHeader(header)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h.StreamID)
}

func TestUnknownFrameTypeIsProtocolError(t *testing.T) {
	header := []byte{0x00, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x00}
	_, err := DecodeHeader(header)
	assert.Error(t, err)
}

func TestFixedLengthPayloadsRejectWrongLength(t *testing.T) {
	_, err := DecodePriority([]byte{1, 2, 3, 4})
	assert.Error(t, err)

	_, err = DecodeRSTStream([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = DecodePing(0, []byte{1, 2, 3, 4, 5, 6, 7})
	assert.Error(t, err)

	_, err = DecodeWindowUpdate([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSettingsPayloadLengthMustBeMultipleOfSix(t *testing.T) {
	_, err := DecodeSettingsFrame(0, []byte{1, 2, 3, 4, 5})
	assert.Error(t, err)
}

func TestDataFrameRoundTripWithPadding(t *testing.T) {
	f := &Frame{
		Header:  Header{StreamID: 3},
		Payload: &DataPayload{Data: []byte("hello"), Padded: true, PadLength: 3},
	}
	buf := octetbuf.New()
	require.NoError(t, EncodeFrame(buf, f))

	got, _, err := DecodeFrame(buf.Bytes())
	require.NoError(t, err)
	dp := got.Payload.(*DataPayload)
	assert.Equal(t, []byte("hello"), dp.Data)
	assert.Equal(t, uint8(3), dp.PadLength)
}

func TestGoAwayRoundTripWithDebugData(t *testing.T) {
	f := &Frame{
		Payload: &GoAwayPayload{LastStreamID: 7, ErrorCode: 1, AdditionalDebugData: []byte("bye")},
	}
	buf := octetbuf.New()
	require.NoError(t, EncodeFrame(buf, f))

	got, _, err := DecodeFrame(buf.Bytes())
	require.NoError(t, err)
	gp := got.Payload.(*GoAwayPayload)
	assert.Equal(t, uint32(7), gp.LastStreamID)
	assert.Equal(t, []byte("bye"), gp.AdditionalDebugData)
}

func TestPreface(t *testing.T) {
	assert.Len(t, PrefaceBytes(), 24)
	assert.True(t, HasValidPreface(append(PrefaceBytes(), 1, 2, 3)))
	assert.False(t, HasValidPreface([]byte("not a preface")))
}
