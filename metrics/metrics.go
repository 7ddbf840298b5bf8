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

// Package metrics exposes Prometheus instrumentation for the frame and
// HPACK codecs, in the style of packetd/controller's promauto globals.
// Callers that don't scrape Prometheus pay nothing beyond the metric
// update calls themselves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/packetd/h2codec/common"
)

var (
	framesEncoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "frames_encoded_total",
			Help:      "Frames encoded, by frame type",
		},
		[]string{"type"},
	)

	framesDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "frames_decoded_total",
			Help:      "Frames decoded, by frame type",
		},
		[]string{"type"},
	)

	frameDecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "frame_decode_errors_total",
			Help:      "Frame decode failures, by RFC 7540 error code",
		},
		[]string{"code"},
	)

	hpackDynamicTableEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "hpack_dynamic_table_evictions_total",
			Help:      "Dynamic table entries evicted across all HPACK tables",
		},
	)

	hpackLiteralEncodings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "hpack_literal_encodings_total",
			Help:      "HPACK literal string encodings, by Huffman/raw",
		},
		[]string{"encoding"},
	)

	hpackDecodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: common.App,
			Name:      "hpack_decode_duration_seconds",
			Help:      "Wall time spent decoding one header block fragment",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// FrameEncoded records one successfully encoded frame of the given type
// name (e.g. "HEADERS").
func FrameEncoded(typeName string) {
	framesEncoded.WithLabelValues(typeName).Inc()
}

// FrameDecoded records one successfully decoded frame of the given type
// name.
func FrameDecoded(typeName string) {
	framesDecoded.WithLabelValues(typeName).Inc()
}

// FrameDecodeError records one frame decode failure tagged with its RFC
// 7540 §7 error code name (e.g. "COMPRESSION_ERROR").
func FrameDecodeError(codeName string) {
	frameDecodeErrors.WithLabelValues(codeName).Inc()
}

// HPACKDynamicTableEvicted records n dynamic table entries evicted in one
// Insert/UpdateSize call.
func HPACKDynamicTableEvicted(n int) {
	if n <= 0 {
		return
	}
	hpackDynamicTableEvictions.Add(float64(n))
}

// HPACKLiteralEncoded records one literal string encoded either with
// Huffman coding or as a raw octet string.
func HPACKLiteralEncoded(huffman bool) {
	if huffman {
		hpackLiteralEncodings.WithLabelValues("huffman").Inc()
		return
	}
	hpackLiteralEncodings.WithLabelValues("raw").Inc()
}

// ObserveHPACKDecodeDuration records how long one header block fragment
// decode took, in seconds.
func ObserveHPACKDecodeDuration(seconds float64) {
	hpackDecodeDuration.Observe(seconds)
}
