// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bbox

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/patrickkesper/amira-blender-rendering/scene"
)

// cubeCorners returns the corners of the [-1,1] cube in the renderer's
// native bounding-box corner order.
func cubeCorners() []r3.Vector {
	return []r3.Vector{
		{X: -1, Y: -1, Z: -1},
		{X: -1, Y: -1, Z: 1},
		{X: -1, Y: 1, Z: 1},
		{X: -1, Y: 1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: -1},
	}
}

func identity4() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func translation4(x, y, z float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	})
}

func boxCamera() *scene.Camera {
	return &scene.Camera{
		Translation: r3.Vector{Z: 10},
		Rotation:    mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
		K:           mat.NewDense(3, 3, []float64{100, 0, 50, 0, 100, 50, 0, 0, 1}),
		Width:       100,
		Height:      100,
	}
}

func TestReorderPermutation(t *testing.T) {
	corners := cubeCorners()
	out, err := Reorder(corners)
	require.NoError(t, err)
	for i, j := range [8]int{1, 0, 2, 3, 5, 4, 6, 7} {
		assert.Equal(t, corners[j], out[i])
	}
}

func TestReorderCornerCount(t *testing.T) {
	for _, n := range []int{0, 4, 9} {
		_, err := Reorder(make([]r3.Vector, n))
		assert.ErrorIs(t, err, ErrCornerCount, "corner count %d", n)
	}
}

func TestBoxes3DIdentityWorld(t *testing.T) {
	obj := &scene.Object{BoundBox: cubeCorners(), World: identity4()}
	aabb, oobb, corners2d, err := Boxes3D(obj, boxCamera())
	require.NoError(t, err)

	// row 0 is the centroid
	assert.Equal(t, r3.Vector{}, aabb[0])
	assert.Equal(t, r3.Vector{}, oobb[0])

	// rows 1-8 are the corners in the schema ordering
	ordered, err := Reorder(cubeCorners())
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		assert.Equal(t, ordered[i], aabb[i+1])
		assert.Equal(t, ordered[i], oobb[i+1])
	}

	// centroid on the optical axis projects to the principal point
	assert.Equal(t, [2]float64{50, 50}, corners2d[0])
}

func TestBoxes3DTranslatedWorld(t *testing.T) {
	obj := &scene.Object{BoundBox: cubeCorners(), World: translation4(2, 0, 0)}
	aabb, oobb, _, err := Boxes3D(obj, boxCamera())
	require.NoError(t, err)

	// aabb ignores the world transform
	assert.Equal(t, r3.Vector{}, aabb[0])
	// oobb carries it
	assert.Equal(t, r3.Vector{X: 2}, oobb[0])
	for i := 1; i < 9; i++ {
		assert.Equal(t, aabb[i].Add(r3.Vector{X: 2}), oobb[i])
	}
}

func TestBoxes3DCornerCount(t *testing.T) {
	for _, n := range []int{4, 9} {
		obj := &scene.Object{BoundBox: make([]r3.Vector, n), World: identity4()}
		_, _, _, err := Boxes3D(obj, boxCamera())
		assert.ErrorIs(t, err, ErrCornerCount, "corner count %d", n)
	}
}
