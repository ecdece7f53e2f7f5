// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/patrickkesper/amira-blender-rendering/config"
	"github.com/patrickkesper/amira-blender-rendering/scene"
)

// Renderer is the control contract of the external rendering engine.
// Render blocks until the frame's pixels and intermediate outputs
// (range map, mask images) are on disk.
type Renderer interface {
	// Setup configures the render device and engine once per run.
	Setup(setup config.RenderSetup) error

	// Render renders the current frame, blocking until complete.
	Render() error
}

// Compositor is the contract of the renderer's output compositor: it
// routes per-modality outputs to the dataset tree and fixes the
// filenames the engine generates.
type Compositor interface {
	// SetupPathspec points the per-modality file outputs at the
	// dataset tree for the given frame.
	SetupPathspec(dir DirInfo, baseFilename string) error

	// Postprocess runs after a render completes, fixing generated
	// filenames and emitting per-object mask files before they are
	// read back from disk.
	Postprocess() error
}

// SceneProvider is the contract of the scene construction side: it
// owns the live scene graph and hands the pipeline an immutable
// snapshot per frame.
type SceneProvider interface {
	// Randomize re-poses the target objects and camera for the next
	// frame.
	Randomize() error

	// SetEnvironmentTexture sets the scene's environment texture.
	SetEnvironmentTexture(path string) error

	// Frame returns the immutable snapshot of the current scene state
	// for the frame with the given base filename.
	Frame(baseFilename string) (*scene.Frame, error)
}
