package numeric

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_ish/internal/adapters/logger"
	"github.com/baditaflorin/go_ish/internal/core/domain"
)

func newComparator(t *testing.T, reference interface{}) *Comparator {
	t.Helper()
	c, err := NewComparator(reference, DefaultConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestEqualWithinTolerance(t *testing.T) {
	for _, r := range []float64{0, 1, -3.5, 5, 42.42, 1e6, -1e-3} {
		c := newComparator(t, r)

		ok, err := c.Equal(r)
		require.NoError(t, err)
		assert.True(t, ok, "%v == %v", r, r)

		ok, err = c.Equal(r + 0.1)
		require.NoError(t, err)
		assert.True(t, ok, "%v + 0.1", r)

		ok, err = c.Equal(r - 0.1)
		require.NoError(t, err)
		assert.True(t, ok, "%v - 0.1", r)

		ok, err = c.Equal(r + 0.3)
		require.NoError(t, err)
		assert.False(t, ok, "%v + 0.3", r)

		ok, err = c.Equal(r - 0.3)
		require.NoError(t, err)
		assert.False(t, ok, "%v - 0.3", r)
	}
}

func TestBoundsAreClosed(t *testing.T) {
	c, err := NewComparator(10, Config{Tolerance: 0.5}, logger.NewNopLogger())
	require.NoError(t, err)

	min, max := c.Bounds()
	assert.Equal(t, 9.5, min)
	assert.Equal(t, 10.5, max)

	for _, v := range []float64{9.5, 10.5} {
		ok, err := c.Equal(v)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestCandidateConversion(t *testing.T) {
	c := newComparator(t, 5)

	tests := []struct {
		name      string
		candidate interface{}
		want      bool
	}{
		{"int", 5, true},
		{"int8", int8(5), true},
		{"uint64", uint64(5), true},
		{"float32", float32(4.9), true},
		{"float string", "5.1", true},
		{"padded string", "  4.95\n", true},
		{"int string", "5", true},
		{"far string", "7", false},
		{"exponent", "5e0", true},
		{"bytes", []byte("5.0"), true},
		{"json number", json.Number("5.2"), true},
		{"underscore digits", "1_000", false},
		{"bool true", true, false},
		{"inf", "inf", false},
		{"nan", "NaN", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := c.Equal(tc.candidate)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	one := newComparator(t, 1)
	ok, err := one.Equal(true)
	require.NoError(t, err)
	assert.True(t, ok)

	zero := newComparator(t, 0)
	ok, err = zero.Equal(false)
	require.NoError(t, err)
	assert.True(t, ok)

	thousand := newComparator(t, 1000)
	ok, err = thousand.Equal("1_000")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAmbiguousCandidates(t *testing.T) {
	c := newComparator(t, 5)
	for _, candidate := range []interface{}{"five", "", "5 apples", nil, []int{5}, struct{}{}, json.Number("x")} {
		_, err := c.Equal(candidate)
		assert.True(t, domain.IsAmbiguous(err), "%#v", candidate)

		_, err = c.Less(candidate)
		assert.True(t, domain.IsAmbiguous(err), "%#v", candidate)

		_, err = c.Greater(candidate)
		assert.True(t, domain.IsAmbiguous(err), "%#v", candidate)
	}
}

func TestHexLiteralsAreAmbiguous(t *testing.T) {
	c := newComparator(t, 1000.5)
	for _, candidate := range []interface{}{"0x3E8.8p0", " 0X3e8.8P0 ", "-0x1p0", []byte("+0x10")} {
		_, err := c.Equal(candidate)
		assert.True(t, domain.IsAmbiguous(err), "%#v", candidate)
	}

	ok, err := c.Equal("1000.5")
	require.NoError(t, err)
	assert.True(t, ok)

	zero := newComparator(t, 0)
	ok, err = zero.Equal("0")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrdering(t *testing.T) {
	c := newComparator(t, 5)

	tests := []struct {
		candidate      interface{}
		less           bool
		lessOrEqual    bool
		greater        bool
		greaterOrEqual bool
	}{
		{6, true, true, false, false},
		{5.1, true, true, false, false},
		{"5", true, true, false, false},
		{4.9, true, true, false, false},
		{4.5, false, false, true, true},
		{-10, false, false, true, true},
	}
	for _, tc := range tests {
		less, err := c.Less(tc.candidate)
		require.NoError(t, err)
		assert.Equal(t, tc.less, less, "5-ish < %v", tc.candidate)

		le, err := c.LessOrEqual(tc.candidate)
		require.NoError(t, err)
		assert.Equal(t, tc.lessOrEqual, le, "5-ish <= %v", tc.candidate)

		gt, err := c.Greater(tc.candidate)
		require.NoError(t, err)
		assert.Equal(t, tc.greater, gt, "5-ish > %v", tc.candidate)

		ge, err := c.GreaterOrEqual(tc.candidate)
		require.NoError(t, err)
		assert.Equal(t, tc.greaterOrEqual, ge, "5-ish >= %v", tc.candidate)
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{Tolerance: 0}.Validate())
	assert.Error(t, Config{Tolerance: -0.1}.Validate())
	assert.Error(t, Config{Tolerance: math.NaN()}.Validate())
	assert.Error(t, Config{Tolerance: math.Inf(1)}.Validate())

	_, err := NewComparator(1, Config{Tolerance: -1}, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestNonNumericReference(t *testing.T) {
	_, err := NewComparator("5", DefaultConfig(), logger.NewNopLogger())
	assert.True(t, domain.IsNotComparable(err))
}

func TestAccessors(t *testing.T) {
	c := newComparator(t, 5)
	assert.Equal(t, 5, c.Reference())
	assert.Equal(t, domain.NumericKind, c.Kind())
	assert.Equal(t, "5-ish", c.String())
	assert.Equal(t, "2.5-ish", newComparator(t, 2.5).String())
}
