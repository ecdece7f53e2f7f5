// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package depth rectifies the renderer's raw range maps into true
// perpendicular depth maps, and optionally derives stereo disparity
// maps for calibrated parallel camera setups.
package depth

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/mat"

	"github.com/patrickkesper/amira-blender-rendering/base/iox/imagex"
	"github.com/patrickkesper/amira-blender-rendering/base/iox/pfmx"
)

// RectifyRange converts the per-pixel Euclidean range map at rangePath
// (camera-to-surface distance along the viewing ray) into a true
// perpendicular depth map (distance along the optical axis), using the
// pinhole model: depth = range * cos(theta), where theta is the angle
// between the ray through the pixel and the optical axis as given by
// the calibration matrix K.
//
// The output is written to depthPath as a 16-bit grayscale PNG with
// values multiplied by scale. This quantization is lossy: values
// outside the representable range saturate rather than error. The
// destination directory is created if absent.
func RectifyRange(rangePath, depthPath string, width, height int, K *mat.Dense, scale float64) error {
	rm, err := pfmx.Open(rangePath)
	if err != nil {
		return fmt.Errorf("depth.RectifyRange: %w", err)
	}
	if rm.Width != width || rm.Height != height {
		return fmt.Errorf("depth.RectifyRange: range map is %dx%d, expected %dx%d",
			rm.Width, rm.Height, width, height)
	}
	if err := os.MkdirAll(filepath.Dir(depthPath), 0o755); err != nil {
		return err
	}

	fx := float32(K.At(0, 0))
	fy := float32(K.At(1, 1))
	cx := float32(K.At(0, 2))
	cy := float32(K.At(1, 2))
	s := float32(scale)

	img := image.NewGray16(image.Rect(0, 0, width, height))
	for v := 0; v < height; v++ {
		for u := 0; u < width; u++ {
			x := (float32(u) - cx) / fx
			y := (float32(v) - cy) / fy
			// cos(theta) = 1 / |(x, y, 1)|
			d := rm.At(u, v) / math32.Sqrt(x*x+y*y+1)
			img.SetGray16(u, v, quantize16(d*s))
		}
	}
	return imagex.Save(img, depthPath)
}

// quantize16 converts a scaled value to a 16-bit raster sample,
// saturating at the representable range. NaN maps to zero.
func quantize16(v float32) color.Gray16 {
	switch {
	case v != v: // NaN
		return color.Gray16{Y: 0}
	case v <= 0:
		return color.Gray16{Y: 0}
	case v >= 65535:
		return color.Gray16{Y: 65535}
	default:
		return color.Gray16{Y: uint16(math32.Round(v))}
	}
}
