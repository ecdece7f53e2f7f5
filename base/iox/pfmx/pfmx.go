// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pfmx reads and writes single-channel float32 rasters in the
// Portable FloatMap (PFM) format. The renderer emits per-pixel camera
// range values as raw floats; PFM is the simplest portable container
// for them (a three line text header followed by packed float32 data).
package pfmx

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Map is a single-channel float32 raster in row-major order with the
// origin at the top-left, matching image coordinate conventions.
type Map struct {
	Width  int
	Height int
	Data   []float32
}

// NewMap returns a new zero-filled Map of the given size.
func NewMap(width, height int) *Map {
	return &Map{Width: width, Height: height, Data: make([]float32, width*height)}
}

// At returns the value at pixel (x, y).
func (m *Map) At(x, y int) float32 {
	return m.Data[y*m.Width+x]
}

// Set sets the value at pixel (x, y).
func (m *Map) Set(x, y int, v float32) {
	m.Data[y*m.Width+x] = v
}

// Open reads a grayscale PFM file from the given filename.
func Open(filename string) (*Map, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// Read reads a grayscale PFM raster from the given reader.
// Only the single-channel "Pf" variant is supported.
func Read(r io.Reader) (*Map, error) {
	br := bufio.NewReader(r)
	var magic string
	var w, h int
	var scale float64
	if _, err := fmt.Fscanf(br, "%s\n%d %d\n%g\n", &magic, &w, &h, &scale); err != nil {
		return nil, fmt.Errorf("pfmx.Read: malformed header: %w", err)
	}
	if magic != "Pf" {
		return nil, fmt.Errorf("pfmx.Read: unsupported magic %q (only grayscale Pf supported)", magic)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pfmx.Read: invalid dimensions %dx%d", w, h)
	}
	order := binary.ByteOrder(binary.LittleEndian)
	if scale > 0 {
		order = binary.BigEndian
	}
	m := NewMap(w, h)
	buf := make([]byte, 4*w)
	// PFM stores scanlines bottom-to-top
	for y := h - 1; y >= 0; y-- {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("pfmx.Read: short data: %w", err)
		}
		row := m.Data[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			row[x] = math.Float32frombits(order.Uint32(buf[4*x:]))
		}
	}
	return m, nil
}

// Save writes the map to the given filename in little-endian PFM format.
func Save(m *Map, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	defer bw.Flush()
	return Write(m, bw)
}

// Write writes the map to the given writer in little-endian PFM format.
func Write(m *Map, w io.Writer) error {
	if len(m.Data) != m.Width*m.Height {
		return fmt.Errorf("pfmx.Write: data length %d does not match %dx%d", len(m.Data), m.Width, m.Height)
	}
	if _, err := fmt.Fprintf(w, "Pf\n%d %d\n-1.0\n", m.Width, m.Height); err != nil {
		return err
	}
	buf := make([]byte, 4*m.Width)
	for y := m.Height - 1; y >= 0; y-- {
		row := m.Data[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			binary.LittleEndian.PutUint32(buf[4*x:], math.Float32bits(v))
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
