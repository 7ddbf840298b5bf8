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

// Package h2err 定义 HTTP/2 (RFC 7540 §7) 错误码与 codec 包统一返回的错误类型
package h2err

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code 是 RFC 7540 §7 定义的连接/流错误码
type Code uint32

const (
	NoError            Code = 0x0
	ProtocolError      Code = 0x1
	InternalError      Code = 0x2
	FlowControlError   Code = 0x3
	SettingsTimeout    Code = 0x4
	StreamClosed       Code = 0x5
	FrameSizeError     Code = 0x6
	RefusedStream      Code = 0x7
	Cancel             Code = 0x8
	CompressionError   Code = 0x9
	ConnectError       Code = 0xA
	EnhanceYourCalm    Code = 0xB
	InadequateSecurity Code = 0xC
	Http11Required     Code = 0xD
)

func (c Code) String() string {
	switch c {
	case NoError:
		return "NO_ERROR"
	case ProtocolError:
		return "PROTOCOL_ERROR"
	case InternalError:
		return "INTERNAL_ERROR"
	case FlowControlError:
		return "FLOW_CONTROL_ERROR"
	case SettingsTimeout:
		return "SETTINGS_TIMEOUT"
	case StreamClosed:
		return "STREAM_CLOSED"
	case FrameSizeError:
		return "FRAME_SIZE_ERROR"
	case RefusedStream:
		return "REFUSED_STREAM"
	case Cancel:
		return "CANCEL"
	case CompressionError:
		return "COMPRESSION_ERROR"
	case ConnectError:
		return "CONNECT_ERROR"
	case EnhanceYourCalm:
		return "ENHANCE_YOUR_CALM"
	case InadequateSecurity:
		return "INADEQUATE_SECURITY"
	case Http11Required:
		return "HTTP_1_1_REQUIRED"
	default:
		return fmt.Sprintf("UNKNOWN_ERROR(0x%x)", uint32(c))
	}
}

// Error 是 codec 包唯一的可失败返回类型 携带 RFC 7540 错误码与来源包前缀
type Error struct {
	Code    Code
	Pkg     string
	cause   error
	message string
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Pkg, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Pkg, e.message)
}

// Unwrap 允许 errors.Is/As 穿透到底层原因
func (e *Error) Unwrap() error {
	return e.cause
}

// New 构造一个携带错误码的 *Error 仿照 phttp2.newError 的包前缀风格
func New(pkg string, code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Pkg:     pkg,
		message: errors.Errorf(format, args...).Error(),
	}
}

// Wrap 包装下层错误并附上 RFC 错误码
func Wrap(pkg string, code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Pkg:     pkg,
		cause:   cause,
		message: fmt.Sprintf(format, args...),
	}
}

// CodeOf 返回 err 携带的 RFC 7540 错误码 非 *Error 时返回 InternalError
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}
