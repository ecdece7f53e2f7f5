// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/patrickkesper/amira-blender-rendering/base/logx"
	"github.com/patrickkesper/amira-blender-rendering/bbox"
	"github.com/patrickkesper/amira-blender-rendering/geom"
	"github.com/patrickkesper/amira-blender-rendering/scene"
)

// Builder assembles dual-convention pose render results for the
// objects of a frame.
type Builder struct {
	// Zeroing is the fixed compensating rotation, as XYZ Euler angles
	// in degrees, applied when computing relative object rotations.
	Zeroing r3.Vector

	// UnitConversion is applied to all length-valued fields of the
	// built results. Nil leaves scene units unchanged.
	UnitConversion UnitConversion

	// VisibilityFromMask downgrades a nominally-visible object with an
	// empty mask to invisible instead of failing the frame.
	VisibilityFromMask bool
}

// Build computes the pose render results for one object, in the
// render-engine convention and the computer-vision convention.
//
// If the object is visible, its mask is loaded to derive the 2D
// bounding box; an empty mask either downgrades the object to
// invisible (when [Builder.VisibilityFromMask] is set, with a logged
// warning) or fails with [bbox.ErrEmptyMask]. A corner-count invariant
// violation fails with [bbox.ErrCornerCount], which indicates a
// corrupted upstream contract.
func (bd *Builder) Build(obj *scene.Object, cam *scene.Camera) (render, cv *PoseRenderResult, err error) {
	t := geom.RelativeTranslation(obj, cam)
	R := geom.RelativeRotation(obj, cam, bd.Zeroing)

	visible := obj.Visible
	var corners2d *[9][2]float64
	var aabb, oobb *[9][3]float64
	if visible {
		_, merr := bbox.FromMask(obj.MaskFile)
		switch {
		case merr == nil:
			a, o, c2d, berr := bbox.Boxes3D(obj, cam)
			if berr != nil {
				return nil, nil, berr
			}
			aabb = rows3(a)
			oobb = rows3(o)
			corners2d = &c2d
		case errors.Is(merr, bbox.ErrEmptyMask):
			if !bd.VisibilityFromMask {
				return nil, nil, fmt.Errorf("annotation: object %s:%d: %w",
					obj.ClassName, obj.InstanceID, merr)
			}
			logx.Warn("empty mask, overwriting visibility information",
				"class", obj.ClassName, "instance", obj.InstanceID)
			visible = false
		default:
			return nil, nil, merr
		}
	}

	render = &PoseRenderResult{
		ObjectClassName:   obj.ClassName,
		ObjectClassID:     obj.ClassID,
		ObjectName:        obj.InstanceName,
		ObjectID:          obj.InstanceID,
		MaskName:          obj.MaskName,
		Visible:           visible,
		Rotation:          matrix3(R),
		Translation:       vector3(t),
		CameraRotation:    matrix3(cam.Rotation),
		CameraTranslation: vector3(cam.Translation),
		Corners2D:         corners2d,
		AABB:              aabb,
		OOBB:              oobb,
	}

	// CV counterpart: pose converted, camera rotation right-multiplied
	// by the x-axis flip, camera translation convention-invariant,
	// bounding boxes copied unchanged.
	Rcv, tcv := geom.RenderToCV(R, t)
	cv = &PoseRenderResult{
		ObjectClassName:   obj.ClassName,
		ObjectClassID:     obj.ClassID,
		ObjectName:        obj.InstanceName,
		ObjectID:          obj.InstanceID,
		MaskName:          obj.MaskName,
		Visible:           visible,
		Rotation:          matrix3(Rcv),
		Translation:       vector3(tcv),
		CameraRotation:    matrix3(geom.CameraRotationToCV(cam.Rotation)),
		CameraTranslation: vector3(cam.Translation),
		Corners2D:         copyCorners(corners2d),
		AABB:              copyBox(aabb),
		OOBB:              copyBox(oobb),
	}

	render.ConvertUnits(bd.UnitConversion)
	cv.ConvertUnits(bd.UnitConversion)
	return render, cv, nil
}

func copyBox(b *[9][3]float64) *[9][3]float64 {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

func copyCorners(c *[9][2]float64) *[9][2]float64 {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}
