package shared

import "math/bits"

// FastReduce maps a 64-bit hash into the range [0, n) without a modulo,
// using Lemire's multiply-shift reduction: the high 64 bits of the
// 128-bit product h*n.
func FastReduce(h uint64, n int) int {
	if n <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(h, uint64(n))
	return int(hi)
}

// Rot64 rotates h left by r bits and is used to derive the secondary
// hash from the primary one. CBG calls this with r=32, which for a
// 64-bit value swaps its two halves.
func Rot64(h uint64, r uint) uint64 {
	return bits.RotateLeft64(h, int(r))
}
