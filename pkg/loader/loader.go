// Package loader reads LC-3 object images into guest memory.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrImageOpen wraps a failure to open an image file on disk.
var ErrImageOpen = errors.New("failed to open image")

// ErrImageFormat is returned when an image stream ends before even the
// two-byte origin word can be read.
var ErrImageFormat = errors.New("malformed image")

// Load reads a big-endian object image from r into mem, starting at the
// origin word the image itself carries as its first two bytes. It returns
// that origin. A payload shorter than the remaining address space, or
// entirely empty, is not an error; anything beyond 0x10000-origin words is
// silently discarded, matching the fixed 65536-word memory an LC-3 guest
// always has.
func Load(mem *[1 << 16]uint16, r io.Reader) (origin uint16, err error) {
	if err := binary.Read(r, binary.BigEndian, &origin); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImageFormat, err)
	}

	addr := origin
	for {
		var word uint16
		if err := binary.Read(r, binary.BigEndian, &word); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return origin, fmt.Errorf("%w: %v", ErrImageFormat, err)
		}

		mem[addr] = word

		if addr == 0xFFFF {
			break
		}
		addr++
	}

	return origin, nil
}

// LoadFile opens path and loads it via Load, wrapping any open failure in
// ErrImageOpen.
func LoadFile(mem *[1 << 16]uint16, path string) (uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImageOpen, err)
	}
	defer f.Close()

	return Load(mem, f)
}
