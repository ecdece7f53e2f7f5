// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/patrickkesper/amira-blender-rendering/annotation"
	"github.com/patrickkesper/amira-blender-rendering/base/iox/imagex"
	"github.com/patrickkesper/amira-blender-rendering/base/iox/jsonx"
	"github.com/patrickkesper/amira-blender-rendering/base/iox/pfmx"
	"github.com/patrickkesper/amira-blender-rendering/config"
	"github.com/patrickkesper/amira-blender-rendering/scene"
)

const (
	testRes = 8 // test render resolution
)

type stubRenderer struct {
	setups  int
	renders int
}

func (s *stubRenderer) Setup(config.RenderSetup) error { s.setups++; return nil }
func (s *stubRenderer) Render() error                  { s.renders++; return nil }

type stubCompositor struct {
	postprocessed int
}

func (s *stubCompositor) SetupPathspec(DirInfo, string) error { return nil }
func (s *stubCompositor) Postprocess() error                  { s.postprocessed++; return nil }

func testK() *mat.Dense {
	return mat.NewDense(3, 3, []float64{100, 0, 4, 0, 100, 4, 0, 0, 1})
}

func identity3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func identity4() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

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

// writeFrameOutputs simulates the renderer's on-disk intermediate
// outputs for one frame: the range map and the instance mask.
func writeFrameOutputs(t *testing.T, dir DirInfo, baseFilename string, emptyMask bool) string {
	t.Helper()
	require.NoError(t, dir.EnsureImages())

	m := pfmx.NewMap(testRes, testRes)
	for i := range m.Data {
		m.Data[i] = 1.0
	}
	require.NoError(t, pfmx.Save(m, dir.RangeFile(baseFilename)))

	im := image.NewRGBA(image.Rect(0, 0, testRes, testRes))
	for y := 0; y < testRes; y++ {
		for x := 0; x < testRes; x++ {
			im.Set(x, y, color.RGBA{A: 255})
		}
	}
	if !emptyMask {
		for y := 2; y < 5; y++ {
			for x := 2; x < 5; x++ {
				im.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	maskFile := filepath.Join(dir.Images.Mask, baseFilename+"_tool_cap.png")
	require.NoError(t, imagex.Save(im, maskFile))
	return maskFile
}

func testFrame(baseFilename, cameraName, maskFile string, visible bool) *scene.Frame {
	return &scene.Frame{
		BaseFilename: baseFilename,
		Camera: &scene.Camera{
			Name:        cameraName,
			Translation: r3.Vector{Z: 10},
			Rotation:    identity3(),
			K:           testK(),
			Width:       testRes,
			Height:      testRes,
		},
		Objects: []*scene.Object{{
			ClassName:    "tool_cap",
			ClassID:      1,
			InstanceName: "ToolCap.000",
			InstanceID:   0,
			Visible:      visible,
			Translation:  r3.Vector{},
			Rotation:     identity3(),
			World:        identity4(),
			BoundBox:     cubeCorners(),
			MaskFile:     maskFile,
			MaskName:     "mask_0000",
		}},
	}
}

func postprocessConfig() config.Postprocess {
	return config.Postprocess{
		DepthScale:                1e4,
		ComputeDisparity:          true,
		ParallelCameras:           []string{"StereoCamera"},
		ParallelCamerasBaselineMM: 50,
	}
}

func TestManagerPostprocess(t *testing.T) {
	dir := BuildDirInfo(t.TempDir())
	comp := &stubCompositor{}
	m := NewManager(&stubRenderer{}, comp)

	maskFile := writeFrameOutputs(t, dir, "0000", false)
	frame := testFrame("0000", "StereoCamera.Left", maskFile, true)
	require.NoError(t, m.Postprocess(dir, "0000", frame, r3.Vector{}, postprocessConfig()))

	assert.Equal(t, 1, comp.postprocessed)

	// rectified depth written
	g, err := imagex.OpenGray16(dir.DepthFile("0000"))
	require.NoError(t, err)
	assert.Equal(t, uint16(10000), g.Gray16At(4, 4).Y)

	// parallel camera matched: disparity written
	_, err = os.Stat(dir.DisparityFile("0000"))
	assert.NoError(t, err)

	// one record per convention, with bounding boxes in millimeters
	for _, adir := range []string{dir.Annotations.Render, dir.Annotations.CV} {
		var sd map[string]*annotation.PoseRenderResult
		require.NoError(t, jsonx.Open(&sd, filepath.Join(adir, "0000.json")))
		require.Len(t, sd, 1)
		rec := sd["0"]
		assert.True(t, rec.Visible)
		assert.Equal(t, "tool_cap", rec.ObjectClassName)
		require.NotNil(t, rec.AABB)
		assert.InDelta(t, -1000, rec.AABB[1][0], 1e-9)
	}
}

func TestManagerPostprocessNonParallelCamera(t *testing.T) {
	dir := BuildDirInfo(t.TempDir())
	m := NewManager(&stubRenderer{}, &stubCompositor{})

	maskFile := writeFrameOutputs(t, dir, "0000", false)
	frame := testFrame("0000", "MonoCamera", maskFile, true)
	require.NoError(t, m.Postprocess(dir, "0000", frame, r3.Vector{}, postprocessConfig()))

	_, err := os.Stat(dir.DisparityFile("0000"))
	assert.True(t, os.IsNotExist(err))
}

func TestManagerPostprocessZeroVisibleObjects(t *testing.T) {
	dir := BuildDirInfo(t.TempDir())
	m := NewManager(&stubRenderer{}, &stubCompositor{})

	maskFile := writeFrameOutputs(t, dir, "0000", false)
	frame := testFrame("0000", "MonoCamera", maskFile, false)
	require.NoError(t, m.Postprocess(dir, "0000", frame, r3.Vector{}, postprocessConfig()))

	// the invisible result is still annotated, exactly once
	var sd map[string]*annotation.PoseRenderResult
	require.NoError(t, jsonx.Open(&sd, filepath.Join(dir.Annotations.Render, "0000.json")))
	require.Len(t, sd, 1)
	assert.False(t, sd["0"].Visible)
	assert.Nil(t, sd["0"].AABB)
}

func TestManagerPostprocessEmptyMaskPolicy(t *testing.T) {
	dir := BuildDirInfo(t.TempDir())
	m := NewManager(&stubRenderer{}, &stubCompositor{})

	maskFile := writeFrameOutputs(t, dir, "0000", true)
	frame := testFrame("0000", "MonoCamera", maskFile, true)

	// default policy: empty mask is fatal
	cfg := postprocessConfig()
	assert.Error(t, m.Postprocess(dir, "0000", frame, r3.Vector{}, cfg))

	// with visibility_from_mask the frame survives, downgraded
	cfg.VisibilityFromMask = true
	require.NoError(t, m.Postprocess(dir, "0000", frame, r3.Vector{}, cfg))
	var sd map[string]*annotation.PoseRenderResult
	require.NoError(t, jsonx.Open(&sd, filepath.Join(dir.Annotations.Render, "0000.json")))
	require.Len(t, sd, 1)
	assert.False(t, sd["0"].Visible)
}
