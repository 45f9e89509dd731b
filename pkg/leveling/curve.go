package leveling

import "math"

// DefaultCurveBase gives level = floor(sqrt(xp) / 10)
const DefaultCurveBase = 100

// MaxLevel is the highest level a member can be set to
const MaxLevel = 1_000_000

// Curve maps experience to levels. Level n starts at Base*n² experience, so
// Level and XPForLevel are exact inverses on level boundaries.
type Curve struct {
	Base int64
}

// XPForLevel returns the experience at which level n starts. n is clamped
// to MaxLevel.
func (c Curve) XPForLevel(n int) int64 {
	if n <= 0 {
		return 0
	}
	if limit := c.MaxLevel(); n > limit {
		n = limit
	}
	return c.base() * int64(n) * int64(n)
}

// MaxLevel returns the highest level whose starting experience fits in an
// int64, capped at MaxLevel
func (c Curve) MaxLevel() int {
	limit := isqrt(math.MaxInt64 / c.base())
	if limit > MaxLevel {
		return MaxLevel
	}
	return int(limit)
}

// Level returns the level reached with xp
func (c Curve) Level(xp int64) int {
	if xp <= 0 {
		return 0
	}
	return int(isqrt(xp / c.base()))
}

func (c Curve) base() int64 {
	if c.Base <= 0 {
		return DefaultCurveBase
	}
	return c.Base
}

// isqrt returns floor(sqrt(n)) for n >= 0
func isqrt(n int64) int64 {
	if n < 2 {
		return n
	}
	r := int64(math.Sqrt(float64(n)))
	for r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}
