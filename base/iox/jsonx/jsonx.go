// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonx provides JSON marshal / unmarshal functions that read
// and write files directly. Encoding is deterministic: struct fields
// keep declaration order and map keys are sorted, so re-serializing
// the same value yields byte-identical output.
package jsonx

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// Open reads the given object from the given filename using JSON encoding.
func Open(v any, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Read(v, bufio.NewReader(file))
}

// Read reads the given object from the given reader using JSON encoding.
func Read(v any, r io.Reader) error {
	return json.NewDecoder(r).Decode(v)
}

// Save writes the given object to the given filename using JSON encoding,
// overwriting any existing file.
func Save(v any, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	defer bw.Flush()
	return Write(v, bw)
}

// Write writes the given object to the given writer using JSON encoding.
func Write(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(v)
}
