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

package common

const (
	// App 应用程序名称 用于 metrics 命名空间与 version 子命令输出
	App = "h2codec"

	// Version 应用程序版本
	Version = "v0.0.1"

	// ReadWriteBlockSize 读写帧数据的默认块大小 (cmd/h2inspect 以 os.ReadFile 整体读取文件 不使用该值)
	ReadWriteBlockSize = 4096
)
