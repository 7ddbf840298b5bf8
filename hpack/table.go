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
	"github.com/cespare/xxhash/v2"

	"github.com/packetd/h2codec/metrics"
)

// firstDynamicIndex is the wire index of the most-recently inserted dynamic
// table entry. Static entries occupy 1..StaticTableSize.
const firstDynamicIndex = StaticTableSize + 1

// DefaultDynamicTableSize is the initial dynamic table bound, matching the
// HEADER_TABLE_SIZE default (settings.DefaultHeaderTableSize mirrors this).
const DefaultDynamicTableSize = 4096

// Table is one endpoint's view of the HPACK static+dynamic header table.
// An endpoint owns two Tables -- one mirroring what its peer has indexed
// (encode side) and one reflecting what it has itself absorbed (decode
// side); they are never shared across connections.
//
// Entries are stored oldest-first internally (new entries append to the
// tail) so insertion never shifts earlier positions; wire index arithmetic
// maps the newest-first dynamic index space onto that storage order.
type Table struct {
	entries []HeaderField
	size    int // Σ(len(name)+len(value)+32) over entries
	maxSize int

	// nameIndex accelerates Find by caching, for each header name seen,
	// the internal (storage-order) positions of matching entries. It is
	// rebuilt lazily whenever an eviction shifts storage positions, since
	// a partial patch would cost as much as a rebuild anyway.
	nameIndex map[uint64][]int
	dirty     bool
}

// NewTable returns a Table with the given initial dynamic table size bound.
func NewTable(maxSize int) *Table {
	return &Table{maxSize: maxSize, nameIndex: make(map[uint64][]int)}
}

// Len returns the number of entries currently in the dynamic table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Size returns the current RFC 7541 §4.1 octet-accounted size of the
// dynamic table.
func (t *Table) Size() int {
	return t.size
}

// MaxSize returns the current dynamic table bound.
func (t *Table) MaxSize() int {
	return t.maxSize
}

// Clone returns an independent copy of t, used by callers that need to
// encode or decode against a scratch table without mutating the caller's
// own.
func (t *Table) Clone() *Table {
	c := &Table{
		entries:   make([]HeaderField, len(t.entries)),
		size:      t.size,
		maxSize:   t.maxSize,
		nameIndex: make(map[uint64][]int, len(t.nameIndex)),
		dirty:     t.dirty,
	}
	copy(c.entries, t.entries)
	for k, v := range t.nameIndex {
		cv := make([]int, len(v))
		copy(cv, v)
		c.nameIndex[k] = cv
	}
	return c
}

// Get resolves a wire index (1-based) to a header field. ok is false for
// index 0 or any index beyond the current static+dynamic range.
func (t *Table) Get(index uint32) (HeaderField, bool) {
	if index >= 1 && index <= StaticTableSize {
		return staticTable[index], true
	}
	j := int(index) - firstDynamicIndex
	if j < 0 || j >= len(t.entries) {
		return HeaderField{}, false
	}
	return t.entries[len(t.entries)-1-j], true
}

// Find returns the lowest wire index whose name matches and, when value is
// non-empty, whose value also matches -- a strict conjunction, not a
// preference: if value is non-empty and no entry has both the name and the
// value, Find returns 0 even if an entry with the name alone exists. When
// value is empty, the lowest index whose name matches is returned. It
// scans the static table first, then the dynamic table (index order, i.e.
// newest dynamic entry first).
func (t *Table) Find(name, value string) uint32 {
	nameOnly := uint32(0)

	for i := uint32(1); i <= StaticTableSize; i++ {
		e := staticTable[i]
		if e.Name != name {
			continue
		}
		if value == "" {
			return i
		}
		if e.Value == value {
			return i
		}
		if nameOnly == 0 {
			nameOnly = i
		}
	}

	if t.dirty {
		t.rebuildIndex()
	}
	positions := t.nameIndex[xxhash.Sum64String(name)]
	// positions are storage-order ascending (oldest first); the lowest
	// wire index is the newest entry, i.e. the largest storage position.
	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		e := t.entries[pos]
		if e.Name != name {
			continue // hash collision
		}
		idx := uint32(firstDynamicIndex + (len(t.entries) - 1 - pos))
		if value == "" {
			return idx
		}
		if e.Value == value {
			return idx
		}
		if nameOnly == 0 {
			nameOnly = idx
		}
	}

	if value != "" {
		return 0
	}
	return nameOnly
}

// Insert adds a field as the newest dynamic table entry, evicting from the
// oldest end until the size bound holds (including, per RFC 7541 §4.4, the
// case where the new entry alone exceeds the bound and the table ends up
// empty).
func (t *Table) Insert(f HeaderField) {
	pos := len(t.entries)
	t.entries = append(t.entries, f)
	t.size += f.size()
	t.nameIndex[xxhash.Sum64String(f.Name)] = append(t.nameIndex[xxhash.Sum64String(f.Name)], pos)
	t.evict()
}

// UpdateSize changes the dynamic table bound, evicting from the oldest end
// until the new bound holds.
func (t *Table) UpdateSize(n int) {
	t.maxSize = n
	t.evict()
}

func (t *Table) evict() {
	evicted := 0
	for t.size > t.maxSize && len(t.entries) > 0 {
		t.size -= t.entries[0].size()
		t.entries = t.entries[1:]
		evicted++
	}
	if evicted > 0 {
		t.dirty = true
		metrics.HPACKDynamicTableEvicted(evicted)
	}
}

// rebuildIndex recomputes nameIndex from scratch after an eviction has
// shifted every surviving entry's storage position.
func (t *Table) rebuildIndex() {
	for k := range t.nameIndex {
		delete(t.nameIndex, k)
	}
	for i, e := range t.entries {
		h := xxhash.Sum64String(e.Name)
		t.nameIndex[h] = append(t.nameIndex[h], i)
	}
	t.dirty = false
}
