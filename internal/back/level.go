package back

import "math"

const (
	MinExperience = 0
	MaxExperience = 10_000_000
)

// ComputeLevel derives the level reached with the given experience and the
// experience still missing to reach the next one:
//     level = floor((sqrt(2500 + 200*xp) - 50) / 100)
//     untilNextLevel = 50*(level+1)*(level+2) - xp
func ComputeLevel(xp int64) (level int, untilNextLevel int64) {
	root := isqrt(2500 + 200*xp)
	lvl := (root - 50) / 100

	return int(lvl), 50*(lvl+1)*(lvl+2) - xp
}

// isqrt returns floor(sqrt(n)), exact where float64 rounding would not be.
func isqrt(n int64) int64 {
	r := int64(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}

	return r
}
