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

// Package h2msg lifts a decoded HPACK header list into the pseudo-header
// fields RFC 7540 §8.1.2.1/§8.1.2.4 require on every request and response,
// separating them from the ordinary HTTP fields a caller forwards as
// net/http.Header.
package h2msg

import (
	"net/http"

	"github.com/packetd/h2codec/hpack"
)

// Pseudo-header names, RFC 7540 §8.1.2.3/§8.1.2.4.
const (
	PseudoMethod    = ":method"
	PseudoScheme    = ":scheme"
	PseudoPath      = ":path"
	PseudoAuthority = ":authority"
	PseudoStatus    = ":status"
)

var pseudoHeaders = map[string]struct{}{
	PseudoMethod:    {},
	PseudoScheme:    {},
	PseudoPath:      {},
	PseudoAuthority: {},
	PseudoStatus:    {},
}

// RequestFields holds the pseudo-header values of an HTTP/2 request.
// RFC 7540 §8.1.2.3 requires :method, :scheme, and :path on every request
// except CONNECT; :authority may be omitted in favor of a Host field.
type RequestFields struct {
	Method    string
	Scheme    string
	Path      string
	Authority string
}

// ResponseFields holds the pseudo-header values of an HTTP/2 response.
type ResponseFields struct {
	Status string
}

// fieldMap collapses a header list to its last value per name, the same
// last-write-wins semantics HTTP/2 header blocks require.
func fieldMap(list []hpack.HeaderFieldRepresentation) map[string]string {
	m := make(map[string]string, len(list))
	for _, hr := range list {
		m[hr.Field.Name] = hr.Field.Value
	}
	return m
}

func ordinaryHeader(m map[string]string) http.Header {
	h := make(http.Header, len(m))
	for k, v := range m {
		if _, ok := pseudoHeaders[k]; ok {
			continue
		}
		h.Set(k, v)
	}
	return h
}

// SplitRequest separates list into its pseudo-header request fields and
// its ordinary HTTP fields.
func SplitRequest(list []hpack.HeaderFieldRepresentation) (RequestFields, http.Header) {
	m := fieldMap(list)
	return RequestFields{
		Method:    m[PseudoMethod],
		Scheme:    m[PseudoScheme],
		Path:      m[PseudoPath],
		Authority: m[PseudoAuthority],
	}, ordinaryHeader(m)
}

// SplitResponse separates list into its pseudo-header response fields and
// its ordinary HTTP fields.
func SplitResponse(list []hpack.HeaderFieldRepresentation) (ResponseFields, http.Header) {
	m := fieldMap(list)
	return ResponseFields{Status: m[PseudoStatus]}, ordinaryHeader(m)
}

// IsTrailers reports whether list looks like an HTTP/2 trailer block: it
// carries every key in trailerKeys (e.g. the gRPC "grpc-status" field) and
// none of the request/response pseudo-headers that mark a leading HEADERS
// frame.
func IsTrailers(list []hpack.HeaderFieldRepresentation, trailerKeys ...string) bool {
	if len(trailerKeys) == 0 {
		return false
	}
	m := fieldMap(list)
	for _, key := range trailerKeys {
		if _, ok := m[key]; !ok {
			return false
		}
	}
	for key := range pseudoHeaders {
		if _, ok := m[key]; ok {
			return false
		}
	}
	return true
}
