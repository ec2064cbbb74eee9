package encoding

import (
	"math"
)

// Split16 uint16 to two uint8
func Split16(in uint16) (uint8, uint8) {
	return uint8(in >> 8), uint8(in)
}

// Merge8 two uint8 to uint16
func Merge8(a, b uint8) uint16 {
	return (uint16(a) << 8) + uint16(b)
}

// Quantize16 maps v in [0,1] onto the full uint16 range, clamping outside values.
func Quantize16(v float64) uint16 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return math.MaxUint16
	}
	return uint16(math.Round(v * math.MaxUint16))
}

// Dequantize16 is the inverse of Quantize16
func Dequantize16(v uint16) float64 {
	return float64(v) / math.MaxUint16
}
