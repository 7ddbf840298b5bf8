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
	"time"

	"github.com/packetd/h2codec/h2err"
	"github.com/packetd/h2codec/internal/octetbuf"
	"github.com/packetd/h2codec/metrics"
)

const pkgCodec = "hpack/codec"

// representation prefix lengths and pad markers, RFC 7541 §6.
const (
	indexedPrefix = 7
	indexedPad    = 0x80

	incrementalPrefix = 6
	incrementalPad    = 0x40

	withoutIndexingPrefix = 4
	withoutIndexingPad    = 0x00

	neverIndexedPrefix = 4
	neverIndexedPad    = 0x10

	sizeUpdatePrefix = 5
	sizeUpdatePad    = 0x20

	stringHuffmanBit = 0x80
	stringPrefix     = 7
)

// Encode serializes header, a list of header-field representations, into
// dst against table. When updateTable is true, LiteralWithIncrementalIndexing
// entries are inserted into table as they are encoded; when false, table is
// left untouched (the caller is expected to have passed table.Clone() in
// that case, or to discard mutations some other way -- Encode itself simply
// honors the flag RFC 7541 §4.5 style).
func Encode(dst *octetbuf.Buf, header []HeaderFieldRepresentation, table *Table, updateTable bool) {
	for _, hr := range header {
		encodeOne(dst, hr, table, updateTable)
	}
}

func encodeOne(dst *octetbuf.Buf, hr HeaderFieldRepresentation, table *Table, updateTable bool) {
	f := hr.Field
	kind := hr.Kind

	if kind == Indexed && table.Find(f.Name, f.Value) == 0 {
		kind = LiteralWithIncrementalIndexing
	}

	if kind == Indexed {
		idx := table.Find(f.Name, f.Value)
		encodeInteger(dst, uint64(idx), indexedPrefix, indexedPad)
		return
	}

	var prefixLen uint8
	var pad byte
	switch kind {
	case LiteralWithIncrementalIndexing:
		prefixLen, pad = incrementalPrefix, incrementalPad
	case LiteralWithoutIndexing:
		prefixLen, pad = withoutIndexingPrefix, withoutIndexingPad
	case LiteralNeverIndexed:
		prefixLen, pad = neverIndexedPrefix, neverIndexedPad
	default:
		prefixLen, pad = withoutIndexingPrefix, withoutIndexingPad
	}

	if nameIdx := table.Find(f.Name, ""); nameIdx > 0 {
		encodeInteger(dst, uint64(nameIdx), prefixLen, pad)
	} else {
		encodeInteger(dst, 0, prefixLen, pad)
		encodeString(dst, f.Name, f.NameHuffman)
	}
	encodeString(dst, f.Value, f.ValueHuffman)

	if kind == LiteralWithIncrementalIndexing && updateTable {
		table.Insert(HeaderField{Name: f.Name, Value: f.Value})
	}
}

func encodeString(dst *octetbuf.Buf, s string, huffman bool) {
	raw := []byte(s)
	metrics.HPACKLiteralEncoded(huffman)
	if huffman {
		n := HuffmanEncodeLen(raw)
		encodeInteger(dst, uint64(n), stringPrefix, stringHuffmanBit)
		HuffmanEncode(dst, raw)
		return
	}
	encodeInteger(dst, uint64(len(raw)), stringPrefix, 0)
	dst.Append(raw)
}

// Decode parses buf, a header block fragment, into a list of header-field
// representations against table. Dynamic Table Size Update markers are
// applied to table and excluded from the returned list.
func Decode(buf []byte, table *Table, updateTable bool) ([]HeaderFieldRepresentation, error) {
	start := time.Now()
	defer func() { metrics.ObserveHPACKDecodeDuration(time.Since(start).Seconds()) }()

	var out []HeaderFieldRepresentation
	offset := 0

	for offset < len(buf) {
		b := buf[offset]

		switch {
		case b&0x80 != 0:
			idx, ok := decodeInteger(buf, &offset, indexedPrefix)
			if !ok || idx == 0 {
				return nil, h2err.New(pkgCodec, h2err.CompressionError, "invalid indexed header field")
			}
			f, ok := table.Get(uint32(idx))
			if !ok {
				return nil, h2err.New(pkgCodec, h2err.CompressionError, "indexed header field references unknown index %d", idx)
			}
			out = append(out, HeaderFieldRepresentation{Field: f, Kind: Indexed})

		case b&0x40 != 0:
			f, err := decodeLiteral(buf, &offset, table, incrementalPrefix)
			if err != nil {
				return nil, err
			}
			out = append(out, HeaderFieldRepresentation{Field: f, Kind: LiteralWithIncrementalIndexing})
			if updateTable {
				table.Insert(HeaderField{Name: f.Name, Value: f.Value})
			}

		case b&0x20 != 0:
			n, ok := decodeInteger(buf, &offset, sizeUpdatePrefix)
			if !ok {
				return nil, h2err.New(pkgCodec, h2err.CompressionError, "truncated dynamic table size update")
			}
			table.UpdateSize(int(n))

		case b&0x10 != 0:
			f, err := decodeLiteral(buf, &offset, table, neverIndexedPrefix)
			if err != nil {
				return nil, err
			}
			out = append(out, HeaderFieldRepresentation{Field: f, Kind: LiteralNeverIndexed})

		default:
			f, err := decodeLiteral(buf, &offset, table, withoutIndexingPrefix)
			if err != nil {
				return nil, err
			}
			out = append(out, HeaderFieldRepresentation{Field: f, Kind: LiteralWithoutIndexing})
		}
	}

	return out, nil
}

func decodeLiteral(buf []byte, offset *int, table *Table, prefixLen uint8) (HeaderField, error) {
	nameIdx, ok := decodeInteger(buf, offset, prefixLen)
	if !ok {
		return HeaderField{}, h2err.New(pkgCodec, h2err.CompressionError, "truncated literal name index")
	}

	var name string
	var nameHuffman bool
	if nameIdx == 0 {
		s, huff, err := decodeString(buf, offset)
		if err != nil {
			return HeaderField{}, err
		}
		name, nameHuffman = s, huff
	} else {
		f, ok := table.Get(uint32(nameIdx))
		if !ok {
			return HeaderField{}, h2err.New(pkgCodec, h2err.CompressionError, "literal header field references unknown name index %d", nameIdx)
		}
		name = f.Name
	}

	value, valueHuffman, err := decodeString(buf, offset)
	if err != nil {
		return HeaderField{}, err
	}

	return HeaderField{Name: name, Value: value, NameHuffman: nameHuffman, ValueHuffman: valueHuffman}, nil
}

func decodeString(buf []byte, offset *int) (string, bool, error) {
	if *offset >= len(buf) {
		return "", false, h2err.New(pkgCodec, h2err.CompressionError, "truncated header string")
	}
	huffman := buf[*offset]&stringHuffmanBit != 0

	n, ok := decodeInteger(buf, offset, stringPrefix)
	if !ok {
		return "", false, h2err.New(pkgCodec, h2err.CompressionError, "truncated header string length")
	}
	if *offset+int(n) > len(buf) {
		return "", false, h2err.New(pkgCodec, h2err.CompressionError, "header string length exceeds buffer")
	}

	raw := buf[*offset : *offset+int(n)]
	*offset += int(n)

	if !huffman {
		return string(raw), false, nil
	}
	decoded, err := HuffmanDecode(raw)
	if err != nil {
		return "", false, err
	}
	return string(decoded), true, nil
}
