// Package encoding provides the small set of bit-level helpers the LC-3
// simulator needs: sign extension of narrow immediate fields, the 16-bit
// byte swap used when a big-endian object image is read on a little-endian
// host, and hex/decimal literal parsing helpers (the config loader uses
// DecodeHex for hex start_pc values).
package encoding

import (
	"errors"
	"strconv"
	"strings"
)

// SignExtend treats the low bitcount bits of value as a two's-complement
// integer and returns the equivalent 16-bit word.
func SignExtend(value uint16, bitcount uint16) uint16 {
	if (value>>(bitcount-1))&0x1 == 1 {
		value |= 0xFFFF << bitcount
	}

	return value
}

// SwapEndian reverses the byte order of a 16-bit word.
func SwapEndian(value uint16) uint16 {
	return (value >> 8) | (value << 8)
}

// DecodeHex decodes a hexadecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF.
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// DecodeInt decodes a base-10 string in the formats: #123, 123.
func DecodeInt(s string) (int16, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseInt(s, 10, 16)

	if err != nil {
		return 0, err
	}

	return int16(result), nil
}
