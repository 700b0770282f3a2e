// SPDX-License-Identifier: Unlicense OR MIT

package shm

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func (b *Buffer) alloc(name string) error {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		// Kernels without memfd still get a working bar.
		newPrivate(b)
		return nil
	}
	size := b.Stride * b.Height
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return fmt.Errorf("shm: ftruncate %d bytes: %w", size, err)
	}
	// The compositor maps the same file; prevent it from shrinking
	// under either side.
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_ADD_SEALS, unix.F_SEAL_SHRINK); err != nil {
		unix.Close(fd)
		return fmt.Errorf("shm: seal: %w", err)
	}
	pix, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return fmt.Errorf("shm: mmap: %w", err)
	}
	b.Pix, b.fd, b.mapped = pix, fd, true
	return nil
}

func (b *Buffer) free() error {
	if !b.mapped {
		return nil
	}
	b.mapped = false
	err := unix.Munmap(b.Pix)
	if cerr := unix.Close(b.fd); err == nil {
		err = cerr
	}
	b.fd = -1
	if err != nil {
		return fmt.Errorf("shm: %w", err)
	}
	return nil
}
