// SPDX-License-Identifier: Unlicense OR MIT

// Package shm allocates pixel buffers that can be shared with a
// compositor.
package shm

import (
	"fmt"

	"tidebar.org/geom"
)

// Buffer is an ARGB8888 pixel buffer.
type Buffer struct {
	// Pix holds Stride*Height bytes.
	Pix    []byte
	Stride int
	Width  int
	Height int

	fd     int
	mapped bool
}

// Size returns the buffer dimensions in pixels.
func (b *Buffer) Size() geom.Point[int] {
	return geom.Pt(b.Width, b.Height)
}

// Fd returns the file descriptor of the shared memory, or -1 if the
// buffer is process private.
func (b *Buffer) Fd() int {
	return b.fd
}

// NewBuffer allocates a width by height buffer. Where the platform
// supports it, the memory is an anonymous file that can be passed to
// a compositor.
func NewBuffer(name string, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("shm: invalid buffer size %dx%d", width, height)
	}
	b := &Buffer{Stride: 4 * width, Width: width, Height: height, fd: -1}
	if err := b.alloc(name); err != nil {
		return nil, err
	}
	return b, nil
}

// Close releases the memory. The buffer must not be used afterwards.
func (b *Buffer) Close() error {
	err := b.free()
	b.Pix = nil
	return err
}

func newPrivate(b *Buffer) {
	b.Pix = make([]byte, b.Stride*b.Height)
}
