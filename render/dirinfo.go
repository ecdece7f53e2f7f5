// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render sequences renderer configuration, rendering, and the
// annotation postprocessing pipeline, frame at a time. The renderer
// itself is an external collaborator behind the [Renderer] and
// [Compositor] contracts.
package render

import (
	"os"
	"path/filepath"
)

// DirInfo describes the output tree of a generated dataset: image
// subfolders per modality and annotation subfolders per coordinate
// convention.
type DirInfo struct {
	// Base is the dataset root directory.
	Base string

	// Images holds the per-modality image directories.
	Images ImageDirs

	// Annotations holds the per-convention annotation directories.
	Annotations AnnotationDirs
}

// ImageDirs are the per-modality image output directories.
type ImageDirs struct {
	RGB       string
	Range     string
	Depth     string
	Mask      string
	Disparity string
}

// AnnotationDirs are the per-convention annotation output directories.
type AnnotationDirs struct {
	// Render holds annotations in the render-engine (OpenGL) convention.
	Render string

	// CV holds annotations in the computer-vision (OpenCV) convention.
	CV string
}

// BuildDirInfo returns the DirInfo for a dataset rooted at base.
func BuildDirInfo(base string) DirInfo {
	images := filepath.Join(base, "images")
	annotations := filepath.Join(base, "annotations")
	return DirInfo{
		Base: base,
		Images: ImageDirs{
			RGB:       filepath.Join(images, "rgb"),
			Range:     filepath.Join(images, "range"),
			Depth:     filepath.Join(images, "depth"),
			Mask:      filepath.Join(images, "mask"),
			Disparity: filepath.Join(images, "disparity"),
		},
		Annotations: AnnotationDirs{
			Render: filepath.Join(annotations, "opengl"),
			CV:     filepath.Join(annotations, "opencv"),
		},
	}
}

// EnsureImages creates the modality image directories that the
// renderer writes into. The disparity directory is not created here:
// it appears only when a parallel-camera configuration matches.
// Annotation directories are created on save.
func (d DirInfo) EnsureImages() error {
	for _, dir := range []string{d.Images.RGB, d.Images.Range, d.Images.Depth, d.Images.Mask} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// RangeFile returns the raw range raster path for the given frame.
func (d DirInfo) RangeFile(baseFilename string) string {
	return filepath.Join(d.Images.Range, baseFilename+".pfm")
}

// DepthFile returns the rectified depth map path for the given frame.
func (d DirInfo) DepthFile(baseFilename string) string {
	return filepath.Join(d.Images.Depth, baseFilename+".png")
}

// DisparityFile returns the disparity map path for the given frame.
func (d DirInfo) DisparityFile(baseFilename string) string {
	return filepath.Join(d.Images.Disparity, baseFilename+".png")
}
