// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package annotation assembles per-object pose render results in two
// coordinate conventions, collects them per frame, and persists them
// as structured annotation records.
package annotation

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// UnitConversion is a pluggable scalar transform applied to every
// length-valued component of a result (translations and 3D bounding
// boxes). Pixel-valued fields are never converted.
type UnitConversion func(float64) float64

// SceneToMM is the default unit conversion from scene units (meters)
// to millimeters.
func SceneToMM(v float64) float64 { return v * 1000 }

// PoseRenderResult is the annotation record for one object in one
// frame, in one coordinate convention. It is immutable once built
// except for a single in-place unit conversion pass.
//
// If Visible is false, the bounding-box fields are nil; if Visible is
// true and a non-empty mask exists, they are populated.
type PoseRenderResult struct {
	// ObjectClassName is the object's class name.
	ObjectClassName string `json:"object_class_name"`

	// ObjectClassID is the numeric class id.
	ObjectClassID int `json:"object_class_id"`

	// ObjectName is the scene-graph instance name.
	ObjectName string `json:"object_name"`

	// ObjectID is the per-class instance id.
	ObjectID int `json:"object_id"`

	// MaskName is the mask reference name for this object.
	MaskName string `json:"mask_name"`

	// Visible reports whether the object is visible in the frame,
	// after any policy-driven downgrade from an empty mask.
	Visible bool `json:"visible"`

	// Rotation is the object rotation relative to the camera.
	Rotation [3][3]float64 `json:"rotation"`

	// Translation is the object translation in the camera frame.
	Translation [3]float64 `json:"translation"`

	// CameraRotation is the camera's world-frame rotation.
	CameraRotation [3][3]float64 `json:"camera_rotation"`

	// CameraTranslation is the camera's world-frame translation.
	CameraTranslation [3]float64 `json:"camera_translation"`

	// Corners2D holds the pixel projections of the oriented box:
	// centroid plus 8 corners.
	Corners2D *[9][2]float64 `json:"corners2d"`

	// AABB is the axis-aligned 3D box: centroid plus 8 corners.
	AABB *[9][3]float64 `json:"aabb"`

	// OOBB is the object-oriented 3D box: centroid plus 8 corners.
	OOBB *[9][3]float64 `json:"oobb"`

	// converted guards against double application of the staged
	// unit conversion pass.
	converted bool
}

// ConvertUnits applies the given unit conversion in place to the
// translation, camera translation, and both 3D bounding boxes.
// It is idempotent: only the first call has an effect.
func (r *PoseRenderResult) ConvertUnits(conv UnitConversion) {
	if conv == nil || r.converted {
		return
	}
	r.converted = true
	for i := range r.Translation {
		r.Translation[i] = conv(r.Translation[i])
		r.CameraTranslation[i] = conv(r.CameraTranslation[i])
	}
	for _, box := range []*[9][3]float64{r.AABB, r.OOBB} {
		if box == nil {
			continue
		}
		for i := range box {
			for j := range box[i] {
				box[i][j] = conv(box[i][j])
			}
		}
	}
}

// matrix3 flattens a 3x3 gonum matrix into the serialized form.
func matrix3(m *mat.Dense) (out [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return
}

// vector3 flattens an r3 vector into the serialized form.
func vector3(v r3.Vector) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// rows3 flattens 9 r3 vectors into the serialized box form.
func rows3(vs [9]r3.Vector) *[9][3]float64 {
	var out [9][3]float64
	for i, v := range vs {
		out[i] = vector3(v)
	}
	return &out
}
