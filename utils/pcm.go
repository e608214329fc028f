// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

// PutSample writes v as a little-endian integer of bits width into dst.
// 8-bit samples are stored unsigned, as WAV does.
// dst must hold at least (bits+7)/8 bytes.
func PutSample(dst []byte, v int32, bits int) {
	switch (bits + 7) / 8 {
	case 1:
		dst[0] = byte(v + 128)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case 3:
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v >> 16)
	default:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	}
}

// Sample reads a little-endian integer of bits width from src.
// It is the inverse of PutSample.
func Sample(src []byte, bits int) int32 {
	switch (bits + 7) / 8 {
	case 1:
		return int32(src[0]) - 128
	case 2:
		return int32(int16(binary.LittleEndian.Uint16(src)))
	case 3:
		v := int32(src[0]) | int32(src[1])<<8 | int32(src[2])<<16
		// sign extend from 24 bits
		return v << 8 >> 8
	default:
		return int32(binary.LittleEndian.Uint32(src))
	}
}

// PutFloat32 writes x as a little-endian IEEE 754 float into dst.
func PutFloat32(dst []byte, x float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(x))
}

// Float32 reads a little-endian IEEE 754 float from src.
func Float32(src []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src))
}
