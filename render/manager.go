// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/patrickkesper/amira-blender-rendering/annotation"
	"github.com/patrickkesper/amira-blender-rendering/config"
	"github.com/patrickkesper/amira-blender-rendering/depth"
	"github.com/patrickkesper/amira-blender-rendering/scene"
)

// Manager drives the per-frame pipeline in a fixed order: compositor
// postprocessing, range-to-depth rectification, optional disparity,
// per-object dual-convention result building, and annotation
// serialization.
//
// Everything is single-threaded and blocking. If the process is
// interrupted mid-frame, partially written files for that frame are
// left on disk; detecting and cleaning them is the caller's concern.
type Manager struct {
	// Renderer is the external rendering engine.
	Renderer Renderer

	// Compositor is the renderer's output compositor.
	Compositor Compositor

	// UnitConversion is applied to all length-valued annotation
	// fields. Defaults to scene units to millimeters in [NewManager].
	UnitConversion annotation.UnitConversion
}

// NewManager returns a Manager with the default scene-units-to-
// millimeters unit conversion.
func NewManager(r Renderer, c Compositor) *Manager {
	return &Manager{
		Renderer:       r,
		Compositor:     c,
		UnitConversion: annotation.SceneToMM,
	}
}

// Render triggers a blocking render of the current frame.
func (m *Manager) Render() error {
	return m.Renderer.Render()
}

// Postprocess derives all annotations for the rendered frame and
// writes them to the dataset tree, per the configured postprocess
// options. The zeroing rotation is given as XYZ Euler degrees.
//
// A corner-count invariant violation or an empty mask without the
// visibility_from_mask policy aborts the frame with an error; partial
// output for the frame remains on disk.
func (m *Manager) Postprocess(dir DirInfo, baseFilename string, frame *scene.Frame, zeroing r3.Vector, cfg config.Postprocess) error {
	cam := frame.Camera

	// compositor fixes generated filenames and emits mask files
	if err := m.Compositor.Postprocess(); err != nil {
		return fmt.Errorf("render: compositor postprocess: %w", err)
	}

	rangePath := dir.RangeFile(baseFilename)
	depthPath := dir.DepthFile(baseFilename)
	if err := depth.RectifyRange(rangePath, depthPath, cam.Width, cam.Height, cam.K, cfg.DepthScale); err != nil {
		return err
	}

	// NOTE: this assumes the camera for which disparity is computed
	// has the correct baseline for the rendered scene.
	if cfg.ComputeDisparity && cfg.MatchesParallelCamera(cam.Name) {
		err := depth.DisparityFromDepth(depthPath, rangePath, dir.DisparityFile(baseFilename),
			cfg.ParallelCamerasBaselineMM, cam.K, cam.Width, cam.Height, cfg.DepthScale)
		if err != nil {
			return err
		}
	}

	builder := &annotation.Builder{
		Zeroing:            zeroing,
		UnitConversion:     m.UnitConversion,
		VisibilityFromMask: cfg.VisibilityFromMask,
	}
	var resRender, resCV annotation.Collection
	var lastRender, lastCV *annotation.PoseRenderResult
	for _, obj := range frame.Objects {
		rr, rc, err := builder.Build(obj, cam)
		if err != nil {
			return err
		}
		lastRender, lastCV = rr, rc
		if rr.Visible {
			resRender.Add(rr)
			resCV.Add(rc)
		}
	}
	// with no visible object, still annotate the last result so every
	// frame carries general scene and camera state
	if resRender.Len() == 0 && lastRender != nil {
		resRender.Add(lastRender)
		resCV.Add(lastCV)
	}

	if err := annotation.Save(dir.Annotations.Render, baseFilename, &resRender); err != nil {
		return err
	}
	return annotation.Save(dir.Annotations.CV, baseFilename, &resCV)
}
