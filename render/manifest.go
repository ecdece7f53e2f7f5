// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/patrickkesper/amira-blender-rendering/base/iox/jsonx"
	"github.com/patrickkesper/amira-blender-rendering/config"
)

// Manifest records the identity and configuration of a dataset
// generation run, written into the dataset root so a consumer can
// trace the samples back to their generating configuration.
type Manifest struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// CreatedAt is the run start time.
	CreatedAt time.Time `json:"created_at"`

	// Config echoes the full generation configuration.
	Config *config.Config `json:"config"`
}

// WriteManifest writes the run manifest as dataset.json in the
// dataset root, overwriting any previous run's manifest.
func WriteManifest(dir DirInfo, cfg *config.Config) error {
	m := &Manifest{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
	}
	return jsonx.Save(m, filepath.Join(dir.Base, "dataset.json"))
}
