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

import "bytes"

// Preface is the fixed 24-octet string a client sends before any HTTP/2
// frame, RFC 7540 §3.5. Servers that receive anything else MUST close the
// transport.
const Preface = "PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n"

// PrefaceBytes returns Preface as the exact 24-octet wire sequence.
func PrefaceBytes() []byte {
	return []byte(Preface)
}

// HasValidPreface reports whether b begins with the connection preface.
func HasValidPreface(b []byte) bool {
	return bytes.HasPrefix(b, PrefaceBytes())
}
