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

import "github.com/packetd/h2codec/internal/octetbuf"

// ContinuationPayload is the CONTINUATION (0x9) frame payload: a raw
// continuation of a header block fragment begun by a HEADERS or
// PUSH_PROMISE frame.
type ContinuationPayload struct {
	Fragment []byte
}

func (p *ContinuationPayload) Type() Type { return TypeContinuation }

func (p *ContinuationPayload) EncodeTo(dst *octetbuf.Buf) {
	dst.Append(p.Fragment)
}

// DecodeContinuation parses a CONTINUATION frame payload: the entire body
// is the fragment.
func DecodeContinuation(body []byte) *ContinuationPayload {
	return &ContinuationPayload{Fragment: body}
}
