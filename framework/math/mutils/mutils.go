package mutils

import "golang.org/x/exp/constraints"

type signed interface {
	constraints.Signed | constraints.Float
}

func Clamp[T constraints.Ordered](x, minV, maxV T) T {
	return min(maxV, max(minV, x))
}

func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// InverseLerp returns where value lies between a and b, 0 when a == b.
func InverseLerp[T constraints.Float](a, b, value T) T {
	if a == b {
		return 0
	}

	return (value - a) / (b - a)
}

func Abs[T signed](a T) T {
	if a < 0 {
		return -a
	}

	return a
}
