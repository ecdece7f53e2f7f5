// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"math"

	"github.com/patrickkesper/amira-blender-rendering/base/logx"
	"github.com/patrickkesper/amira-blender-rendering/config"
)

// FilenameWidth returns the zero-padding width for frame base
// filenames of a dataset with the given image count.
func FilenameWidth(imageCount int) int {
	if imageCount <= 10 {
		return 1
	}
	return int(math.Ceil(math.Log10(float64(imageCount))))
}

// Generate runs the full dataset generation loop: renderer setup once,
// then per frame environment texture selection, scene randomization,
// a blocking render, and annotation postprocessing. The run manifest
// is written into the dataset root at the end.
//
// There is no isolation between frames beyond the provider's own
// Randomize: the renderer's scene and device state are mutated in
// place across frames.
func Generate(cfg *config.Config, dir DirInfo, provider SceneProvider, m *Manager) error {
	if err := dir.EnsureImages(); err != nil {
		return err
	}
	if err := m.Renderer.Setup(cfg.RenderSetup); err != nil {
		return fmt.Errorf("render: setup: %w", err)
	}

	var pool *TexturePool
	if cfg.RenderSetup.EnvironmentTexture != "" {
		var err error
		pool, err = NewTexturePool(cfg.RenderSetup.EnvironmentTexture)
		if err != nil {
			return err
		}
	}

	width := FilenameWidth(cfg.Dataset.ImageCount)
	zeroing := cfg.CameraInfo.ZeroingVector()
	for i := 0; i < cfg.Dataset.ImageCount; i++ {
		baseFilename := fmt.Sprintf("%0*d", width, i)
		if pool != nil {
			if err := provider.SetEnvironmentTexture(pool.Random()); err != nil {
				return err
			}
		}
		if err := provider.Randomize(); err != nil {
			return err
		}
		frame, err := provider.Frame(baseFilename)
		if err != nil {
			return err
		}
		if err := m.Compositor.SetupPathspec(dir, baseFilename); err != nil {
			return err
		}
		if err := m.Render(); err != nil {
			return fmt.Errorf("render: frame %s: %w", baseFilename, err)
		}
		if err := m.Postprocess(dir, baseFilename, frame, zeroing, cfg.Postprocess); err != nil {
			return fmt.Errorf("render: postprocess frame %s: %w", baseFilename, err)
		}
		logx.Debug("frame complete", "base", baseFilename)
	}

	return WriteManifest(dir, cfg)
}
