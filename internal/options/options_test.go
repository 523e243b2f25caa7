package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type config struct {
	level int
	name  string
	calls []string
}

var errNegative = errors.New("level cannot be negative")

func withLevel(n int) Option[*config] {
	return New(func(c *config) error {
		if n < 0 {
			return errNegative
		}
		c.level = n
		c.calls = append(c.calls, "level")

		return nil
	})
}

func withName(name string) Option[*config] {
	return NoError(func(c *config) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApplyInOrder(t *testing.T) {
	c := &config{}
	require.NoError(t, Apply(c, withLevel(3), withName("a"), withLevel(5)))
	require.Equal(t, 5, c.level)
	require.Equal(t, "a", c.name)
	require.Equal(t, []string{"level", "name", "level"}, c.calls)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	c := &config{}
	err := Apply(c, withLevel(1), withLevel(-1), withName("skipped"))
	require.ErrorIs(t, err, errNegative)
	require.Equal(t, 1, c.level)
	require.Empty(t, c.name)
}

func TestApplyEmptyAndNil(t *testing.T) {
	c := &config{}
	require.NoError(t, Apply(c))
	require.NoError(t, Apply(c, nil, withName("b"), nil))
	require.Equal(t, "b", c.name)
}

func TestCombine(t *testing.T) {
	c := &config{}
	defaults := Combine(withLevel(2), withName("default"))
	require.NoError(t, Apply(c, defaults, withName("override")))
	require.Equal(t, 2, c.level)
	require.Equal(t, "override", c.name)

	require.ErrorIs(t, Apply(&config{}, Combine(withName("x"), withLevel(-3))), errNegative)
}

func TestNonPointerTarget(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })
	require.NoError(t, Apply(&n, opt))
	require.Equal(t, 42, n)
}
