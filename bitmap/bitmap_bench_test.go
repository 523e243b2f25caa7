package bitmap

import (
	"math/rand"
	"testing"
)

func BenchmarkSliceCloneUnaligned(b *testing.B) {
	bm := FromBools(randomBools(rand.New(rand.NewSource(1)), 1<<16))

	b.ReportAllocs()
	for b.Loop() {
		_ = bm.SliceClone(3, 1<<15)
	}
}

func BenchmarkExtendFromBitmapUnaligned(b *testing.B) {
	src := FromBools(randomBools(rand.New(rand.NewSource(1)), 4096))

	b.ReportAllocs()
	for b.Loop() {
		dst := New(5)
		dst.ExtendFromBitmap(src)
	}
}

func BenchmarkCountOnes(b *testing.B) {
	bm := FromBools(randomBools(rand.New(rand.NewSource(1)), 1<<16))

	for b.Loop() {
		_ = bm.CountOnes()
	}
}
