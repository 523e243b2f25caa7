// Package intern implements the string dictionary behind categorical arrays.
package intern

import "github.com/arloliu/colmem/internal/hash"

// Dictionary assigns dense indices to unique strings in first-appearance order.
//
// Strings are keyed by their xxHash64. Different strings sharing a hash are
// kept on a short chain under that hash, so a collision never merges two
// values.
type Dictionary struct {
	index        map[uint64][]int // hash -> indices into values
	values       []string         // ordered unique values
	hasCollision bool
	hashFn       func(string) uint64
}

// New creates an empty dictionary.
func New() *Dictionary {
	return newWithHasher(hash.ID)
}

// FromValues creates a dictionary holding values in order. Duplicates are
// kept only once; the second return reports whether any were dropped.
func FromValues(values []string) (*Dictionary, bool) {
	d := New()
	dropped := false
	for _, v := range values {
		if _, added := d.Intern(v); !added {
			dropped = true
		}
	}

	return d, dropped
}

func newWithHasher(fn func(string) uint64) *Dictionary {
	return &Dictionary{
		index:  make(map[uint64][]int),
		values: make([]string, 0),
		hashFn: fn,
	}
}

// Intern returns the index of s, adding it when absent. The second return is
// true when s was added by this call.
func (d *Dictionary) Intern(s string) (int, bool) {
	h := d.hashFn(s)
	chain := d.index[h]
	for _, idx := range chain {
		if d.values[idx] == s {
			return idx, false
		}
	}
	if len(chain) > 0 {
		d.hasCollision = true
	}

	idx := len(d.values)
	d.values = append(d.values, s)
	d.index[h] = append(chain, idx)

	return idx, true
}

// Lookup returns the index of s without adding it.
func (d *Dictionary) Lookup(s string) (int, bool) {
	for _, idx := range d.index[d.hashFn(s)] {
		if d.values[idx] == s {
			return idx, true
		}
	}

	return 0, false
}

// Value returns the string at index i. It panics if i is out of range.
func (d *Dictionary) Value(i int) string {
	return d.values[i]
}

// Values returns the ordered unique values. The slice must not be modified.
func (d *Dictionary) Values() []string {
	return d.values
}

// Len returns the number of unique values.
func (d *Dictionary) Len() int {
	return len(d.values)
}

// HasCollision reports whether two different values have shared a hash.
func (d *Dictionary) HasCollision() bool {
	return d.hasCollision
}

// Clone returns a deep copy.
func (d *Dictionary) Clone() *Dictionary {
	c := &Dictionary{
		index:        make(map[uint64][]int, len(d.index)),
		values:       append(make([]string, 0, len(d.values)), d.values...),
		hasCollision: d.hasCollision,
		hashFn:       d.hashFn,
	}
	for h, chain := range d.index {
		c.index[h] = append([]int(nil), chain...)
	}

	return c
}

// Reset clears all values but keeps allocated capacity.
func (d *Dictionary) Reset() {
	clear(d.index)
	d.values = d.values[:0]
	d.hasCollision = false
}
