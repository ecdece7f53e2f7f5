// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config defines the dataset generation configuration and
// loads it from TOML, YAML, or JSON files, with the format inferred
// from the filename extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	toml "github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/patrickkesper/amira-blender-rendering/base/iox/jsonx"
)

// Dataset configures the overall dataset to generate.
type Dataset struct {
	// ImageCount is the number of frames to render.
	ImageCount int `toml:"image_count" yaml:"image_count" json:"image_count"`

	// OutputDir is the root of the generated dataset tree.
	OutputDir string `toml:"output_dir" yaml:"output_dir" json:"output_dir"`
}

// CameraInfo configures the camera intrinsics.
type CameraInfo struct {
	// Width and Height are the render resolution in pixels.
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`

	// K optionally gives the 3x3 calibration matrix as 9 row-major
	// values. When empty, the scene provider's own calibration is used.
	K []float64 `toml:"K" yaml:"K" json:"K"`

	// Zeroing is the fixed compensating rotation applied to relative
	// object rotations, as XYZ Euler angles in degrees.
	Zeroing [3]float64 `toml:"zeroing" yaml:"zeroing" json:"zeroing"`
}

// Matrix returns the configured calibration matrix, or nil when K is
// not set. An error is returned for a K of the wrong length.
func (ci *CameraInfo) Matrix() (*mat.Dense, error) {
	if len(ci.K) == 0 {
		return nil, nil
	}
	if len(ci.K) != 9 {
		return nil, fmt.Errorf("config: K must have 9 values, got %d", len(ci.K))
	}
	return mat.NewDense(3, 3, ci.K), nil
}

// ZeroingVector returns the zeroing rotation as a vector of XYZ Euler
// angles in degrees.
func (ci *CameraInfo) ZeroingVector() r3.Vector {
	return r3.Vector{X: ci.Zeroing[0], Y: ci.Zeroing[1], Z: ci.Zeroing[2]}
}

// RenderSetup configures the external renderer.
type RenderSetup struct {
	// Integrator selects the renderer's light-transport integrator.
	Integrator string `toml:"integrator" yaml:"integrator" json:"integrator"`

	// Samples is the per-pixel sampling count.
	Samples int `toml:"samples" yaml:"samples" json:"samples"`

	// EnableDenoising enables the renderer's denoiser.
	EnableDenoising bool `toml:"enable_denoising" yaml:"enable_denoising" json:"enable_denoising"`

	// MotionBlur enables motion blur.
	MotionBlur bool `toml:"motion_blur" yaml:"motion_blur" json:"motion_blur"`

	// EnvironmentTexture is a texture file, or a directory of texture
	// files to pick from randomly per frame.
	EnvironmentTexture string `toml:"environment_texture" yaml:"environment_texture" json:"environment_texture"`
}

// Postprocess configures the annotation postprocessing step.
type Postprocess struct {
	// DepthScale is the range-to-raster quantization factor for the
	// 16-bit depth map.
	DepthScale float64 `toml:"depth_scale" yaml:"depth_scale" json:"depth_scale"`

	// ComputeDisparity enables stereo disparity maps for cameras
	// matching ParallelCameras.
	ComputeDisparity bool `toml:"compute_disparity" yaml:"compute_disparity" json:"compute_disparity"`

	// ParallelCameras are camera-name substrings eligible for
	// disparity computation.
	ParallelCameras []string `toml:"parallel_cameras" yaml:"parallel_cameras" json:"parallel_cameras"`

	// ParallelCamerasBaselineMM is the stereo baseline in millimeters.
	ParallelCamerasBaselineMM float64 `toml:"parallel_cameras_baseline_mm" yaml:"parallel_cameras_baseline_mm" json:"parallel_cameras_baseline_mm"`

	// VisibilityFromMask downgrades nominally-visible objects with an
	// empty mask to invisible instead of failing the frame.
	VisibilityFromMask bool `toml:"visibility_from_mask" yaml:"visibility_from_mask" json:"visibility_from_mask"`
}

// MatchesParallelCamera reports whether the given camera name contains
// any of the configured parallel-camera substrings.
func (p *Postprocess) MatchesParallelCamera(name string) bool {
	for _, c := range p.ParallelCameras {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// Config is the complete dataset generation configuration.
type Config struct {
	Dataset     Dataset     `toml:"dataset" yaml:"dataset" json:"dataset"`
	CameraInfo  CameraInfo  `toml:"camera_info" yaml:"camera_info" json:"camera_info"`
	RenderSetup RenderSetup `toml:"render_setup" yaml:"render_setup" json:"render_setup"`
	Postprocess Postprocess `toml:"postprocess" yaml:"postprocess" json:"postprocess"`
}

// Defaults returns a Config with the default values.
func Defaults() *Config {
	return &Config{
		Dataset: Dataset{ImageCount: 1},
		CameraInfo: CameraInfo{
			Width:   640,
			Height:  480,
			Zeroing: [3]float64{90, 0, 0},
		},
		RenderSetup: RenderSetup{
			Integrator: "PATH",
			Samples:    128,
		},
		Postprocess: Postprocess{
			DepthScale: 1e4,
		},
	}
}

// Open loads a configuration from the given filename, on top of the
// defaults. The format is inferred from the extension: .toml, .yaml,
// .yml, and .json are supported.
func Open(filename string) (*Config, error) {
	cfg := Defaults()
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".toml":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.Open: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.Open: %w", err)
		}
	case ".json":
		if err := jsonx.Open(cfg, filename); err != nil {
			return nil, fmt.Errorf("config.Open: %w", err)
		}
	default:
		return nil, errors.New("config.Open: unsupported extension " + ext)
	}
	return cfg, nil
}
