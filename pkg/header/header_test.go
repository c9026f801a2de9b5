// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package header

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindCompatibilityReport),
		WithAPIVersion("v1"),
		WithMetadata("node", "wsl-dev"),
	)

	assert.Equal(t, KindCompatibilityReport, h.GetKind())
	assert.Equal(t, "v1", h.APIVersion)
	assert.Equal(t, "wsl-dev", h.GetMetadata()["node"])
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindRepairReport, "v1", "v0.2.1")

	assert.Equal(t, KindRepairReport, h.Kind)
	assert.Equal(t, "v1", h.APIVersion)
	assert.Equal(t, "v0.2.1", h.Metadata["version"])

	_, err := uuid.Parse(h.Metadata["id"])
	assert.NoError(t, err)

	ts, err := time.Parse(time.RFC3339, h.Metadata["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindSystemReport, "v1", "")

	_, ok := h.Metadata["version"]
	assert.False(t, ok)
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindCompatibilityReport, KindRepairReport, KindSystemReport} {
		assert.True(t, k.IsValid(), k)
	}

	unknown := Kind("Recipe")
	assert.False(t, unknown.IsValid())
}
