package array

import (
	"strconv"
	"testing"
)

func BenchmarkPushString(b *testing.B) {
	values := make([]string, 1024)
	for i := range values {
		values[i] = "value-" + strconv.Itoa(i)
	}

	b.ReportAllocs()
	for b.Loop() {
		a := StringWithCapacity[uint32](len(values), 0)
		for _, v := range values {
			a.PushString(v)
		}
	}
}

func BenchmarkSetStringSplice(b *testing.B) {
	values := make([]string, 4096)
	for i := range values {
		values[i] = "v" + strconv.Itoa(i)
	}
	a := NewStringArray[uint32](values, nil)

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		// alternate lengths so every call splices
		if i%2 == 0 {
			a.SetString(100, "a much longer replacement")
		} else {
			a.SetString(100, "x")
		}
		i++
	}
}

func BenchmarkToCategorical(b *testing.B) {
	values := make([]string, 1<<14)
	for i := range values {
		values[i] = "host-" + strconv.Itoa(i%64)
	}
	a := NewStringArray[uint32](values, nil)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := ToCategorical[uint8](a); err != nil {
			b.Fatal(err)
		}
	}
}
