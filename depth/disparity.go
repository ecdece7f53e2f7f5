// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package depth

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/mat"

	"github.com/patrickkesper/amira-blender-rendering/base/iox/imagex"
	"github.com/patrickkesper/amira-blender-rendering/base/iox/pfmx"
)

// DisparityFromDepth computes a stereo disparity map for a calibrated
// parallel camera pair:
//
//	disparity_px = focal_length_px * baseline_mm / depth_mm
//
// It reads the rectified 16-bit depth map at depthPath if that file
// exists; otherwise it falls back to deriving depth from the raw range
// map at rangePath (rectifying on the fly). scale is the range-to-raster
// factor the depth map was quantized with; depth is assumed to be in
// meters before scaling, so depth_mm = raw / scale * 1000.
//
// Pixels with zero or undefined depth produce zero disparity; values
// beyond the 16-bit range saturate. Neither condition is an error.
// The output is written to dispPath as a 16-bit grayscale PNG of
// rounded pixel disparities; the destination directory is created if
// absent.
func DisparityFromDepth(depthPath, rangePath, dispPath string, baselineMM float64, K *mat.Dense, width, height int, scale float64) error {
	depthMM, err := loadDepthMM(depthPath, rangePath, K, width, height, scale)
	if err != nil {
		return fmt.Errorf("depth.DisparityFromDepth: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dispPath), 0o755); err != nil {
		return err
	}

	fpx := float32(K.At(0, 0))
	bmm := float32(baselineMM)
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for v := 0; v < height; v++ {
		for u := 0; u < width; u++ {
			d := depthMM.At(u, v)
			if d <= 0 || d != d {
				// zero / undefined depth: no disparity
				continue
			}
			img.SetGray16(u, v, quantize16(fpx*bmm/d))
		}
	}
	return imagex.Save(img, dispPath)
}

// loadDepthMM returns a per-pixel depth map in millimeters, preferring
// the rectified depth raster and falling back to the raw range map
// when the rectified file does not exist.
func loadDepthMM(depthPath, rangePath string, K *mat.Dense, width, height int, scale float64) (*pfmx.Map, error) {
	if _, err := os.Stat(depthPath); err == nil {
		g, err := imagex.OpenGray16(depthPath)
		if err != nil {
			return nil, err
		}
		b := g.Bounds()
		if b.Dx() != width || b.Dy() != height {
			return nil, fmt.Errorf("depth map is %dx%d, expected %dx%d", b.Dx(), b.Dy(), width, height)
		}
		m := pfmx.NewMap(width, height)
		s := float32(scale)
		for v := 0; v < height; v++ {
			for u := 0; u < width; u++ {
				m.Set(u, v, float32(g.Gray16At(u, v).Y)/s*1000)
			}
		}
		return m, nil
	}

	rm, err := pfmx.Open(rangePath)
	if err != nil {
		return nil, err
	}
	if rm.Width != width || rm.Height != height {
		return nil, fmt.Errorf("range map is %dx%d, expected %dx%d", rm.Width, rm.Height, width, height)
	}
	fx := float32(K.At(0, 0))
	fy := float32(K.At(1, 1))
	cx := float32(K.At(0, 2))
	cy := float32(K.At(1, 2))
	m := pfmx.NewMap(width, height)
	for v := 0; v < height; v++ {
		for u := 0; u < width; u++ {
			x := (float32(u) - cx) / fx
			y := (float32(v) - cy) / fy
			m.Set(u, v, rm.At(u, v)/math32.Sqrt(x*x+y*y+1)*1000)
		}
	}
	return m, nil
}
