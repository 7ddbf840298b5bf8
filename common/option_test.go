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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDecode(t *testing.T) {
	type config struct {
		DynamicTableSize int  `mapstructure:"dynamic_table_size"`
		EnablePush       bool `mapstructure:"enable_push"`
	}

	opts := NewOptions()
	opts.Merge("dynamic_table_size", 8192)
	opts.Merge("enable_push", true)

	var cfg config
	require.NoError(t, opts.Decode(&cfg))
	assert.Equal(t, 8192, cfg.DynamicTableSize)
	assert.True(t, cfg.EnablePush)
}

func TestOptionsGetters(t *testing.T) {
	opts := NewOptions()
	opts.Merge("n", "42")
	opts.Merge("b", "true")
	opts.Merge("list", []string{"a", "b"})

	n, err := opts.GetInt("n")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	b, err := opts.GetBool("b")
	require.NoError(t, err)
	assert.True(t, b)

	list, err := opts.GetStringSlice("list")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)
}
