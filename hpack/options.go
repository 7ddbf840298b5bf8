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

import "github.com/packetd/h2codec/common"

// OptDynamicTableSize names the common.Options key NewTableFromOptions
// reads for the initial dynamic table bound.
const OptDynamicTableSize = "dynamic_table_size"

// tableOptions is the typed shape NewTableFromOptions decodes a
// common.Options map onto, via Options.Decode, rather than pulling fields
// out one at a time with Options.GetInt.
type tableOptions struct {
	DynamicTableSize int `mapstructure:"dynamic_table_size"`
}

// NewTableFromOptions builds a Table from a common.Options map, for callers
// assembling table configuration alongside other programmatic options.
func NewTableFromOptions(opts common.Options) (*Table, error) {
	to := tableOptions{DynamicTableSize: DefaultDynamicTableSize}
	if opts != nil {
		if err := opts.Decode(&to); err != nil {
			return nil, err
		}
	}
	return NewTable(to.DynamicTableSize), nil
}
