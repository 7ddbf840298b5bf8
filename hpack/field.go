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

// HeaderField is a single (name, value) pair. NameHuffman/ValueHuffman
// record whether the on-the-wire literal was (or, on encode, must be)
// Huffman-coded; they carry no meaning for Indexed representations.
//
// Names are expected to already be canonical lowercase -- the codec does
// not normalize them.
type HeaderField struct {
	Name         string
	Value        string
	NameHuffman  bool
	ValueHuffman bool
}

// size is the RFC 7541 §4.1 octet-accounting size of the field as it
// would sit in the dynamic table: len(name) + len(value) + 32.
func (f HeaderField) size() int {
	return len(f.Name) + len(f.Value) + 32
}

// RepresentationKind selects how a HeaderField is carried on the wire.
type RepresentationKind uint8

const (
	// Indexed resolves both name and value from a table entry by index.
	Indexed RepresentationKind = iota

	// LiteralWithIncrementalIndexing carries a literal value (and
	// possibly a literal name) that MUST be appended to the dynamic
	// table after it is emitted or decoded.
	LiteralWithIncrementalIndexing

	// LiteralWithoutIndexing carries a literal value that must not be
	// inserted into the dynamic table.
	LiteralWithoutIndexing

	// LiteralNeverIndexed is like LiteralWithoutIndexing but additionally
	// forbids any intermediary from indexing it when it is forwarded.
	LiteralNeverIndexed
)

// HeaderFieldRepresentation pairs a HeaderField with the representation
// kind that should be used (encode) or was observed (decode) on the wire.
type HeaderFieldRepresentation struct {
	Field HeaderField
	Kind  RepresentationKind
}
