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

package hpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/h2codec/h2err"
	"github.com/packetd/h2codec/internal/octetbuf"
)

// TestEncodeIndexedHeader is scenario S3: an Indexed representation over an
// empty dynamic table encodes to the single byte 0x82 and decodes back
// without touching the dynamic table.
func TestEncodeIndexedHeader(t *testing.T) {
	table := NewTable(DefaultDynamicTableSize)
	list := []HeaderFieldRepresentation{
		{Field: HeaderField{Name: ":method", Value: "GET"}, Kind: Indexed},
	}

	buf := octetbuf.New()
	Encode(buf, list, table, true)
	assert.Equal(t, []byte{0x82}, buf.Bytes())

	decodeTable := NewTable(DefaultDynamicTableSize)
	got, err := Decode(buf.Bytes(), decodeTable, true)
	require.NoError(t, err)
	assert.Equal(t, list, got)
	assert.Equal(t, 0, decodeTable.Len())
}

// TestEncodeLiteralWithIncrementalIndexingRFCExample is scenario S4, the
// RFC 7541 §C.2.1 worked example.
func TestEncodeLiteralWithIncrementalIndexingRFCExample(t *testing.T) {
	want := []byte{
		0x40, 0x0a, 0x63, 0x75, 0x73, 0x74, 0x6f, 0x6d, 0x2d, 0x6b, 0x65, 0x79,
		0x0c, 0x63, 0x75, 0x73, 0x74, 0x6f, 0x6d, 0x2d, 0x68, 0x65, 0x61, 0x64, 0x65, 0x72,
	}

	table := NewTable(DefaultDynamicTableSize)
	list := []HeaderFieldRepresentation{
		{Field: HeaderField{Name: "custom-key", Value: "custom-header"}, Kind: LiteralWithIncrementalIndexing},
	}

	buf := octetbuf.New()
	Encode(buf, list, table, true)
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, 1, table.Len())

	got, ok := table.Get(firstDynamicIndex)
	assert.True(t, ok)
	assert.Equal(t, HeaderField{Name: "custom-key", Value: "custom-header"}, got)

	decodeTable := NewTable(DefaultDynamicTableSize)
	decoded, err := Decode(want, decodeTable, true)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "custom-key", decoded[0].Field.Name)
	assert.Equal(t, "custom-header", decoded[0].Field.Value)
	assert.Equal(t, 1, decodeTable.Len())
}

func TestCodecRoundTripIndexedNameLiteralValue(t *testing.T) {
	table := NewTable(DefaultDynamicTableSize)
	list := []HeaderFieldRepresentation{
		{Field: HeaderField{Name: "content-type", Value: "application/json"}, Kind: LiteralWithoutIndexing},
	}

	buf := octetbuf.New()
	Encode(buf, list, table, false)

	decodeTable := NewTable(DefaultDynamicTableSize)
	got, err := Decode(buf.Bytes(), decodeTable, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "content-type", got[0].Field.Name)
	assert.Equal(t, "application/json", got[0].Field.Value)
	assert.Equal(t, LiteralWithoutIndexing, got[0].Kind)
	assert.Equal(t, 0, decodeTable.Len(), "update_table=false must not index")
}

func TestCodecHuffmanRoundTrip(t *testing.T) {
	table := NewTable(DefaultDynamicTableSize)
	list := []HeaderFieldRepresentation{
		{
			Field: HeaderField{Name: "custom-key", Value: "custom-header", NameHuffman: true, ValueHuffman: true},
			Kind:  LiteralWithIncrementalIndexing,
		},
	}

	buf := octetbuf.New()
	Encode(buf, list, table, true)

	decodeTable := NewTable(DefaultDynamicTableSize)
	got, err := Decode(buf.Bytes(), decodeTable, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "custom-key", got[0].Field.Name)
	assert.Equal(t, "custom-header", got[0].Field.Value)
	assert.True(t, got[0].Field.NameHuffman)
	assert.True(t, got[0].Field.ValueHuffman)
}

func TestDecodeDynamicTableSizeUpdateIsNotEmittedAsHeader(t *testing.T) {
	table := NewTable(DefaultDynamicTableSize)
	buf := octetbuf.New()
	encodeInteger(buf, 100, sizeUpdatePrefix, sizeUpdatePad)

	got, err := Decode(buf.Bytes(), table, true)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 100, table.MaxSize())
}

func TestDecodeIndexedZeroIsCompressionError(t *testing.T) {
	table := NewTable(DefaultDynamicTableSize)
	_, err := Decode([]byte{0x80}, table, true)
	assert.Error(t, err)
	assert.Equal(t, h2err.CompressionError, h2err.CodeOf(err))
}

func TestDecodeIndexedBeyondTableIsCompressionError(t *testing.T) {
	table := NewTable(DefaultDynamicTableSize)
	buf := octetbuf.New()
	encodeInteger(buf, StaticTableSize+5, indexedPrefix, indexedPad)
	_, err := Decode(buf.Bytes(), table, true)
	assert.Error(t, err)
}

func TestAutoDowngradesIndexedMiss(t *testing.T) {
	// An Indexed representation for a field absent from the table must be
	// downgraded to LiteralWithIncrementalIndexing rather than silently
	// emitting a bogus index.
	table := NewTable(DefaultDynamicTableSize)
	list := []HeaderFieldRepresentation{
		{Field: HeaderField{Name: "x-custom", Value: "v"}, Kind: Indexed},
	}

	buf := octetbuf.New()
	Encode(buf, list, table, true)
	assert.NotEqual(t, byte(0x80), buf.Bytes()[0]&0x80)
	assert.Equal(t, 1, table.Len(), "downgraded literal must be indexed afterward")
}

func TestAutoDowngradesIndexedMissOnStaticNameCollision(t *testing.T) {
	// :status is table-resident under several values (200, 204, ...) but not
	// 201; an Indexed representation for :status=201 must downgrade to a
	// literal, not encode as the nearby :status=200 index.
	table := NewTable(DefaultDynamicTableSize)
	list := []HeaderFieldRepresentation{
		{Field: HeaderField{Name: ":status", Value: "201"}, Kind: Indexed},
	}

	buf := octetbuf.New()
	Encode(buf, list, table, true)
	assert.NotEqual(t, byte(0x80), buf.Bytes()[0]&0x80, "must not be encoded as an Indexed representation")

	got, err := Decode(buf.Bytes(), NewTable(DefaultDynamicTableSize), true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ":status", got[0].Field.Name)
	assert.Equal(t, "201", got[0].Field.Value)
}
