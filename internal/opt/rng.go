package opt

import "math/rand"

// deriveSeed смешивает родительский сид и номер потока (финализатор SplitMix64).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveRNG создаёт независимый детерминированный поток из base.
// Вызывать при настройке, а не в горячем цикле: base продвигается на один шаг.
func DeriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := int64(1)
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}
