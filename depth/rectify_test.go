// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package depth

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/patrickkesper/amira-blender-rendering/base/iox/imagex"
	"github.com/patrickkesper/amira-blender-rendering/base/iox/pfmx"
)

// testK returns intrinsics with the principal point at pixel (2,2)
// of a 5x5 raster.
func testK() *mat.Dense {
	return mat.NewDense(3, 3, []float64{100, 0, 2, 0, 100, 2, 0, 0, 1})
}

func writeRange(t *testing.T, filename string, w, h int, fill float32) *pfmx.Map {
	t.Helper()
	m := pfmx.NewMap(w, h)
	for i := range m.Data {
		m.Data[i] = fill
	}
	require.NoError(t, pfmx.Save(m, filename))
	return m
}

func TestRectifyRangePrincipalPoint(t *testing.T) {
	dir := t.TempDir()
	rangePath := filepath.Join(dir, "0.pfm")
	depthPath := filepath.Join(dir, "depth", "0.png")
	writeRange(t, rangePath, 5, 5, 1.0)

	require.NoError(t, RectifyRange(rangePath, depthPath, 5, 5, testK(), 1e4))

	g, err := imagex.OpenGray16(depthPath)
	require.NoError(t, err)
	// on the optical axis cos(theta) = 1, so depth == range
	assert.Equal(t, uint16(10000), g.Gray16At(2, 2).Y)
}

func TestRectifyRangeOffAxis(t *testing.T) {
	dir := t.TempDir()
	rangePath := filepath.Join(dir, "0.pfm")
	depthPath := filepath.Join(dir, "0.png")
	writeRange(t, rangePath, 5, 5, 1.0)

	require.NoError(t, RectifyRange(rangePath, depthPath, 5, 5, testK(), 1e4))

	g, err := imagex.OpenGray16(depthPath)
	require.NoError(t, err)
	// corner pixel: ray direction ((0-2)/100, (0-2)/100, 1)
	want := 1e4 / math.Sqrt(0.02*0.02+0.02*0.02+1)
	assert.InDelta(t, want, float64(g.Gray16At(0, 0).Y), 1.0)
	// depth is strictly less than range off the axis
	assert.Less(t, g.Gray16At(0, 0).Y, g.Gray16At(2, 2).Y)
}

func TestRectifyRangeSaturates(t *testing.T) {
	dir := t.TempDir()
	rangePath := filepath.Join(dir, "0.pfm")
	depthPath := filepath.Join(dir, "0.png")
	writeRange(t, rangePath, 2, 2, 10.0) // 10 * 1e4 = 1e5 > 65535

	require.NoError(t, RectifyRange(rangePath, depthPath, 2, 2, testK(), 1e4))

	g, err := imagex.OpenGray16(depthPath)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), g.Gray16At(0, 0).Y)
}

func TestRectifyRangeZeroAndNaN(t *testing.T) {
	dir := t.TempDir()
	rangePath := filepath.Join(dir, "0.pfm")
	depthPath := filepath.Join(dir, "0.png")
	m := pfmx.NewMap(2, 1)
	m.Set(0, 0, 0)
	m.Set(1, 0, float32(math.NaN()))
	require.NoError(t, pfmx.Save(m, rangePath))

	require.NoError(t, RectifyRange(rangePath, depthPath, 2, 1, testK(), 1e4))

	g, err := imagex.OpenGray16(depthPath)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), g.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(0), g.Gray16At(1, 0).Y)
}

func TestRectifyRangeDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	rangePath := filepath.Join(dir, "0.pfm")
	writeRange(t, rangePath, 2, 2, 1.0)
	err := RectifyRange(rangePath, filepath.Join(dir, "0.png"), 5, 5, testK(), 1e4)
	assert.Error(t, err)
}
