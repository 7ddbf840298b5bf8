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

package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParamsIsEmpty(t *testing.T) {
	assert.Empty(t, Default().Params())
}

func TestParamsEmitsOnlyNonDefault(t *testing.T) {
	s := Default()
	s.MaxFrameSize = 32768
	params := s.Params()
	assert.Equal(t, []Param{{ID: MaxFrameSize, Value: 32768}}, params)
}

func TestParamsOnlyForcesInclusion(t *testing.T) {
	params := Default().Params(HeaderTableSize, EnablePush)
	assert.ElementsMatch(t, []Param{
		{ID: HeaderTableSize, Value: DefaultHeaderTableSize},
		{ID: EnablePush, Value: 1},
	}, params)
}

func TestApplyClampsMaxFrameSize(t *testing.T) {
	s := Default()
	s.Apply(Param{ID: MaxFrameSize, Value: 100})
	assert.Equal(t, MinMaxFrameSize, s.MaxFrameSize)

	s.Apply(Param{ID: MaxFrameSize, Value: 0xFFFFFFFF})
	assert.Equal(t, MaxMaxFrameSize, s.MaxFrameSize)
}

func TestApplyIgnoresUnknownID(t *testing.T) {
	s := Default()
	before := s
	s.Apply(Param{ID: ID(0xFF), Value: 1})
	assert.Equal(t, before, s)
}

func TestApplyEnablePush(t *testing.T) {
	s := Default()
	s.Apply(Param{ID: EnablePush, Value: 0})
	assert.False(t, s.EnablePush)
}
