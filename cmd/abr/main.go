// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command abr validates a dataset generation configuration and
// bootstraps the dataset output tree. The actual generation loop runs
// inside a renderer integration via [render.Generate]; this command
// covers the file-system side: config loading, directory layout, and
// the run manifest.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/patrickkesper/amira-blender-rendering/base/logx"
	"github.com/patrickkesper/amira-blender-rendering/config"
	"github.com/patrickkesper/amira-blender-rendering/render"
)

var (
	configFile = flag.String("config", "config/render_toolcap.toml", "path to the dataset configuration file")
	check      = flag.Bool("check", false, "validate the configuration without touching the file system")
	verbose    = flag.Bool("v", false, "verbose output")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if *verbose {
		logx.UserLevel = slog.LevelDebug
	}
	if err := run(); err != nil {
		logx.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Open(*configFile)
	if err != nil {
		return err
	}
	if _, err := cfg.CameraInfo.Matrix(); err != nil {
		return err
	}
	if cfg.Dataset.OutputDir == "" {
		return fmt.Errorf("config %s: dataset.output_dir is required", *configFile)
	}
	logx.Info("configuration loaded", "config", *configFile,
		"images", cfg.Dataset.ImageCount, "output", cfg.Dataset.OutputDir)
	if *check {
		return nil
	}

	dir := render.BuildDirInfo(cfg.Dataset.OutputDir)
	if err := dir.EnsureImages(); err != nil {
		return err
	}
	if err := render.WriteManifest(dir, cfg); err != nil {
		return err
	}
	logx.PrintfInfo("dataset tree ready at %s\n", dir.Base)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "abr bootstraps a rendered-objects dataset tree from a configuration file.\n")
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\tabr [flags]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}
