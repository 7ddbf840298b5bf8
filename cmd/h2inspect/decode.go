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

package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/packetd/h2codec/common"
	"github.com/packetd/h2codec/frame"
	"github.com/packetd/h2codec/h2err"
	"github.com/packetd/h2codec/h2msg"
	"github.com/packetd/h2codec/hpack"
	"github.com/packetd/h2codec/logger"
)

// headerFieldSummary is the JSON rendering of one decoded HPACK header
// field, flattened from hpack.HeaderFieldRepresentation for readability.
type headerFieldSummary struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Kind  string `json:"kind,omitempty"`
}

func kindName(k hpack.RepresentationKind) string {
	switch k {
	case hpack.Indexed:
		return "indexed"
	case hpack.LiteralWithIncrementalIndexing:
		return "literal-incremental"
	case hpack.LiteralWithoutIndexing:
		return "literal-without-indexing"
	case hpack.LiteralNeverIndexed:
		return "literal-never-indexed"
	default:
		return "unknown"
	}
}

// frameSummary is the JSON rendering of one decoded frame.
type frameSummary struct {
	Type     string               `json:"type"`
	StreamID uint32               `json:"stream_id"`
	Length   uint32               `json:"length"`
	EndHdrs  bool                 `json:"end_headers,omitempty"`
	EndStrm  bool                 `json:"end_stream,omitempty"`
	Headers  []headerFieldSummary `json:"headers,omitempty"`
	Pseudo   map[string]string    `json:"pseudo,omitempty"`
	Trailers bool                 `json:"trailers,omitempty"`
}

// fileReport is the JSON rendering of one decoded capture file.
type fileReport struct {
	File   string         `json:"file"`
	Frames []frameSummary `json:"frames"`
	Error  string         `json:"error,omitempty"`
}

// pendingHeaderBlock tracks a HEADERS/PUSH_PROMISE block awaiting one or
// more CONTINUATION frames before it can be handed to hpack.Decode.
type pendingHeaderBlock struct {
	frameIndex int
	streamID   uint32
	fragment   []byte
}

var (
	decodeInputs      []string
	decodeTrailerKeys []string
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode one or more HTTP/2 frame capture files",
	Long: "Decode reads each file matched by --input (glob patterns, e.g. 'captures/*.bin'),\n" +
		"treats its contents as a raw HTTP/2 frame stream (the 24-octet connection\n" +
		"preface is stripped if present), and prints a JSON summary of every frame\n" +
		"to stdout. HEADERS/PUSH_PROMISE/CONTINUATION fragments are resolved through\n" +
		"one hpack.Table per file, mirroring a single connection's dynamic table.",
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringSliceVar(&decodeInputs, "input", nil, "Glob patterns of capture files to decode (required)")
	decodeCmd.Flags().StringSliceVar(&decodeTrailerKeys, "trailer-keys", nil, "Header names that mark a HEADERS block as a trailer block")
	_ = decodeCmd.MarkFlagRequired("input")
}

func runDecode(cmd *cobra.Command, args []string) error {
	sessionID := uuid.NewString()

	var files []string
	for _, pattern := range decodeInputs {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched --input patterns %v", decodeInputs)
	}
	logger.Infof("session=%s decoding %d file(s)", sessionID, len(files))

	reports := make([]fileReport, len(files))
	var mu sync.Mutex
	var errs *multierror.Error

	g := new(errgroup.Group)
	g.SetLimit(common.Concurrency())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			report, err := decodeFile(path)
			reports[i] = report
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, report := range reports {
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report for %s: %w", report.File, err)
		}
	}

	if errs != nil {
		logger.Warnf("session=%s completed with %d decode error(s)", sessionID, errs.Len())
		return errs.ErrorOrNil()
	}
	return nil
}

func decodeFile(path string) (fileReport, error) {
	report := fileReport{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	body := data
	if frame.HasValidPreface(body) {
		body = body[len(frame.PrefaceBytes()):]
	}

	table := hpack.NewTable(hpack.DefaultDynamicTableSize)
	var pending *pendingHeaderBlock

	offset := 0
	for offset < len(body) {
		f, n, err := frame.DecodeFrame(body[offset:])
		if err != nil {
			report.Error = err.Error()
			return report, err
		}
		offset += n

		summary := frameSummary{
			Type:     f.Header.Type.String(),
			StreamID: f.Header.StreamID,
			Length:   f.Header.Length,
			EndStrm:  f.Header.Flags.Has(frame.FlagEndStream),
		}

		switch p := f.Payload.(type) {
		case *frame.HeadersPayload:
			summary.EndHdrs = f.Header.Flags.Has(frame.FlagEndHeaders)
			report.Frames = append(report.Frames, summary)
			pending = &pendingHeaderBlock{
				frameIndex: len(report.Frames) - 1,
				streamID:   f.Header.StreamID,
				fragment:   append([]byte(nil), p.Fragment...),
			}
			if summary.EndHdrs {
				if err := finishHeaderBlock(&report, table, pending); err != nil {
					report.Error = err.Error()
					return report, err
				}
				pending = nil
			}
			continue

		case *frame.PushPromisePayload:
			summary.EndHdrs = f.Header.Flags.Has(frame.FlagEndHeaders)
			report.Frames = append(report.Frames, summary)
			pending = &pendingHeaderBlock{
				frameIndex: len(report.Frames) - 1,
				streamID:   p.PromisedStreamID,
				fragment:   append([]byte(nil), p.Fragment...),
			}
			if summary.EndHdrs {
				if err := finishHeaderBlock(&report, table, pending); err != nil {
					report.Error = err.Error()
					return report, err
				}
				pending = nil
			}
			continue

		case *frame.ContinuationPayload:
			report.Frames = append(report.Frames, summary)
			if pending == nil {
				continue
			}
			pending.fragment = append(pending.fragment, p.Fragment...)
			if f.Header.Flags.Has(frame.FlagEndHeaders) {
				if err := finishHeaderBlock(&report, table, pending); err != nil {
					report.Error = err.Error()
					return report, err
				}
				pending = nil
			}
			continue
		}

		report.Frames = append(report.Frames, summary)
	}

	return report, nil
}

func finishHeaderBlock(report *fileReport, table *hpack.Table, pending *pendingHeaderBlock) error {
	list, err := hpack.Decode(pending.fragment, table, true)
	if err != nil {
		return fmt.Errorf("stream %d: %w (%s)", pending.streamID, err, h2err.CodeOf(err))
	}

	headers := make([]headerFieldSummary, 0, len(list))
	for _, hr := range list {
		headers = append(headers, headerFieldSummary{
			Name:  hr.Field.Name,
			Value: hr.Field.Value,
			Kind:  kindName(hr.Kind),
		})
	}

	frameSum := &report.Frames[pending.frameIndex]
	frameSum.Headers = headers
	frameSum.Trailers = h2msg.IsTrailers(list, decodeTrailerKeys...)

	if req, _ := h2msg.SplitRequest(list); req.Method != "" || req.Path != "" {
		frameSum.Pseudo = map[string]string{
			h2msg.PseudoMethod:    req.Method,
			h2msg.PseudoScheme:    req.Scheme,
			h2msg.PseudoPath:      req.Path,
			h2msg.PseudoAuthority: req.Authority,
		}
	} else if resp, _ := h2msg.SplitResponse(list); resp.Status != "" {
		frameSum.Pseudo = map[string]string{h2msg.PseudoStatus: resp.Status}
	}

	return nil
}
