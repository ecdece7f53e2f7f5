// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene defines the immutable per-frame snapshot of renderer
// scene-graph state consumed by the annotation pipeline. A scene
// provider (the renderer integration) builds one Frame per rendered
// image; the pipeline never reaches back into live engine state.
package scene

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Object is the snapshot of one renderable target entity.
type Object struct {
	// ClassName is the object class name, e.g. "tool_cap".
	ClassName string

	// ClassID is the numeric class id of the object class.
	ClassID int

	// InstanceName is the name of this instance in the scene graph.
	InstanceName string

	// InstanceID is the per-class instance id.
	InstanceID int

	// Visible reports whether the object is nominally visible in the
	// rendered frame, as determined by the scene provider.
	Visible bool

	// Translation is the world-frame object position, in scene units.
	Translation r3.Vector

	// Rotation is the 3x3 world-frame object rotation matrix.
	Rotation *mat.Dense

	// World is the full 4x4 object-to-world transform matrix used to
	// place local bounding-box corners in the world frame.
	World *mat.Dense

	// BoundBox holds the corners of the object's local bounding box in
	// the renderer's native fixed corner order. The pipeline requires
	// exactly 8 corners; any other count is an upstream contract
	// violation.
	BoundBox []r3.Vector

	// MaskFile is the path of the per-instance mask image written by
	// the compositor for this frame.
	MaskFile string

	// MaskName is the mask reference name recorded in annotations.
	MaskName string
}

// Camera is the snapshot of the active camera: world pose plus
// intrinsic calibration.
type Camera struct {
	// Name is the camera name, matched against parallel-camera
	// substrings when deciding whether to compute disparity.
	Name string

	// Translation is the world-frame camera position, in scene units.
	Translation r3.Vector

	// Rotation is the 3x3 world-frame camera rotation matrix. In the
	// render-engine convention the camera looks along its local -Z
	// axis with +Y up.
	Rotation *mat.Dense

	// K is the 3x3 intrinsic calibration matrix
	// [fx 0 cx; 0 fy cy; 0 0 1] in pixels.
	K *mat.Dense

	// Width and Height are the current render resolution in pixels.
	Width  int
	Height int
}

// Frame is the complete per-frame snapshot handed to the pipeline.
type Frame struct {
	// BaseFilename is the frame's base filename without extension,
	// shared by all modality and annotation files.
	BaseFilename string

	// Camera is the active camera for this frame.
	Camera *Camera

	// Objects are the target objects in this frame.
	Objects []*Object
}
