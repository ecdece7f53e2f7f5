// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import (
	"os"
	"path/filepath"

	"github.com/patrickkesper/amira-blender-rendering/base/iox/jsonx"
)

// Save writes the collection as the frame's annotation record file
// <dir>/<baseFilename>.json, creating the directory tree if missing
// and overwriting any existing file. Serialization is deterministic:
// saving the same collection twice yields byte-identical output.
func Save(dir, baseFilename string, c *Collection) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return jsonx.Save(c.StateDict(), filepath.Join(dir, baseFilename+".json"))
}
