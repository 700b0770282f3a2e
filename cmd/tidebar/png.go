// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"image/png"
	"os"
	"path/filepath"

	"tidebar.org/paint"
)

// writePNG replaces the file at path with the contents of c.
func writePNG(path string, c *paint.Canvas) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	w := bufio.NewWriter(tmp)
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, c.Image()); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
