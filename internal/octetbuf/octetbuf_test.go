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

package octetbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendAndBytes(t *testing.T) {
	b := New()
	b.Append([]byte("hello"))
	b.AppendByte(' ')
	b.Append([]byte("world"))
	assert.Equal(t, "hello world", string(b.Bytes()))
	assert.Equal(t, 11, b.Length())
}

func TestGetSetOutOfRange(t *testing.T) {
	b := New()
	assert.Equal(t, byte(0), b.Get(5))

	b.Set('x', 3)
	assert.Equal(t, 4, b.Length())
	assert.Equal(t, byte('x'), b.Get(3))
	assert.Equal(t, byte(0), b.Get(0))
}

func TestCopyExtendsLength(t *testing.T) {
	b := FromSlice([]byte("0123"))
	b.Copy([]byte("XY"), 3)
	assert.Equal(t, "012XY", string(b.Bytes()))

	b.Copy([]byte("Z"), 10)
	assert.Equal(t, 11, b.Length())
	assert.Equal(t, byte('Z'), b.Get(10))
}

func TestResizeAndClear(t *testing.T) {
	b := FromSlice([]byte("abcdef"))
	b.Resize(3)
	assert.Equal(t, "abc", string(b.Bytes()))

	b.Resize(5)
	assert.Equal(t, 5, b.Length())
	assert.Equal(t, byte(0), b.Get(4))

	b.Clear()
	assert.Equal(t, 0, b.Length())
}

func TestGetValueSetValue(t *testing.T) {
	tests := []struct {
		name    string
		nBytes  int
		value   uint64
		want    uint64
		wantOK  bool
		atStart int
	}{
		{name: "one byte", nBytes: 1, value: 0xAB, want: 0xAB, wantOK: true},
		{name: "three bytes", nBytes: 3, value: 0x010203, want: 0x010203, wantOK: true},
		{name: "eight bytes", nBytes: 8, value: 0x0102030405060708, want: 0x0102030405060708, wantOK: true},
		{name: "nine bytes rejected", nBytes: 9, value: 1, want: 0, wantOK: false},
		{name: "zero bytes rejected", nBytes: 0, value: 1, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			ok := b.SetValue(tt.value, tt.nBytes, tt.atStart)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.nBytes, b.Length())
			assert.Equal(t, tt.want, b.GetValue(tt.nBytes, tt.atStart))
		})
	}
}

func TestGetValueTooWide(t *testing.T) {
	b := FromSlice([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	assert.Equal(t, uint64(0), b.GetValue(9, 0))
}

func TestGrowthDoublesFromEight(t *testing.T) {
	b := New()
	assert.Equal(t, 8, cap(b.buf))
	b.Append(make([]byte, 9))
	assert.Equal(t, 16, cap(b.buf))
}
