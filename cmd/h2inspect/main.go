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

// Command h2inspect decodes standalone HTTP/2 frame captures -- files
// holding a raw frame stream, with or without the leading connection
// preface -- and prints a structured summary of every frame and the
// header fields HPACK resolves them to. It is a thin transport-free
// adapter over the frame/hpack codecs: no socket is opened, no TLS is
// negotiated.
package main

import (
	_ "go.uber.org/automaxprocs"
)

func main() {
	Execute()
}
