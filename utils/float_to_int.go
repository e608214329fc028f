// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt converts a sample in [-1,1] to a signed integer of bits width.
func FloatToInt(x float32, bits int) int32 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	scale := float64(int64(1) << (bits - 1))
	v := float64(x) * scale

	// 1.0 lands one past the positive maximum
	if v > scale-1 {
		v = scale - 1
	}

	return int32(v)
}

// IntToFloat converts a signed integer sample of bits width to [-1,1).
func IntToFloat(v int32, bits int) float32 {
	return float32(float64(v) / float64(int64(1)<<(bits-1)))
}
