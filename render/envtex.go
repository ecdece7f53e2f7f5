// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// TexturePool is the process-wide pool of environment textures.
// It is initialized once per run and never torn down mid-run.
type TexturePool struct {
	paths []string
}

// NewTexturePool builds a pool from the given path: a directory pools
// all files it contains, any other path pools that single file.
func NewTexturePool(path string) (*TexturePool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("render: environment texture: %w", err)
	}
	if !info.IsDir() {
		return &TexturePool{paths: []string{path}}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	p := &TexturePool{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p.paths = append(p.paths, filepath.Join(path, e.Name()))
	}
	if len(p.paths) == 0 {
		return nil, fmt.Errorf("render: no environment textures in %s", path)
	}
	return p, nil
}

// Len returns the number of textures in the pool.
func (p *TexturePool) Len() int {
	return len(p.paths)
}

// Random returns a uniformly random texture path from the pool.
func (p *TexturePool) Random() string {
	return p.paths[rand.Intn(len(p.paths))]
}
