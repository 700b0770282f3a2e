// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux
// +build !linux

package shm

func (b *Buffer) alloc(name string) error {
	newPrivate(b)
	return nil
}

func (b *Buffer) free() error {
	return nil
}
