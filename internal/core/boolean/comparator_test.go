package boolean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_ish/internal/adapters/logger"
	"github.com/baditaflorin/go_ish/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ish/internal/adapters/vocabulary"
	"github.com/baditaflorin/go_ish/internal/core/domain"
)

func newComparator(reference bool) *Comparator {
	return NewComparator(reference, vocabulary.Default(), normalizer.NewDefaultNormalizer(), logger.NewNopLogger())
}

func TestEqualWords(t *testing.T) {
	trueIsh := newComparator(true)
	falseIsh := newComparator(false)

	truthy := []string{"true", "TRUE", " yes ", "On", "Yup!", "yeah", "yarp", "Oui", "ja", "sim", "sea", "jes", "نعم"}
	for _, w := range truthy {
		ok, err := trueIsh.Equal(w)
		require.NoError(t, err, w)
		assert.True(t, ok, w)

		ok, err = falseIsh.Equal(w)
		require.NoError(t, err, w)
		assert.False(t, ok, w)
	}

	falsy := []string{"false", "False", " no\n", "OFF", "Nope", "nah", "narp", "non", "NEIN", "nej", "nee", "ﻷ"}
	for _, w := range falsy {
		ok, err := falseIsh.Equal(w)
		require.NoError(t, err, w)
		assert.True(t, ok, w)

		ok, err = trueIsh.Equal(w)
		require.NoError(t, err, w)
		assert.False(t, ok, w)
	}
}

func TestEqualIntegerStrings(t *testing.T) {
	trueIsh := newComparator(true)

	tests := []struct {
		in   string
		want bool
	}{
		{"0", false},
		{"5", true},
		{"3", true},
		{"-1", true},
		{" 00 ", false},
		{"1_000", true},
		{"123456789012345678901234567890", true},
		{"000000000000000000000000000000", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			ok, err := trueIsh.Equal(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestEqualBytes(t *testing.T) {
	ok, err := newComparator(true).Equal([]byte("Yes"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = newComparator(false).Equal([]byte("nein"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEqualNonText(t *testing.T) {
	trueIsh := newComparator(true)
	falseIsh := newComparator(false)

	tests := []struct {
		name      string
		candidate interface{}
		truthy    bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"nil", nil, false},
		{"zero int", 0, false},
		{"int", 7, true},
		{"zero float", 0.0, false},
		{"float", 0.5, true},
		{"empty slice", []int{}, false},
		{"slice", []int{1}, true},
		{"empty map", map[string]int{}, false},
		{"struct", struct{}{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := trueIsh.Equal(tc.candidate)
			require.NoError(t, err)
			assert.Equal(t, tc.truthy, ok)

			ok, err = falseIsh.Equal(tc.candidate)
			require.NoError(t, err)
			assert.Equal(t, !tc.truthy, ok)
		})
	}
}

func TestEmptyStringIsNotInspected(t *testing.T) {
	ok, err := newComparator(false).Equal("")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = newComparator(true).Equal("")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = newComparator(false).Equal([]byte{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAmbiguous(t *testing.T) {
	for _, in := range []string{"gibberish", "Whatever", "maybe", "?!", "  "} {
		_, err := newComparator(true).Equal(in)
		require.Error(t, err, in)
		assert.True(t, domain.IsAmbiguous(err), in)
		assert.False(t, domain.IsNotComparable(err), in)
	}

	_, err := newComparator(false).Equal("gibberish")
	assert.ErrorIs(t, err, domain.ErrAmbiguous)
	assert.Contains(t, err.Error(), `"gibberish" is not recognised`)
}

func TestAccessors(t *testing.T) {
	c := newComparator(true)
	assert.Equal(t, true, c.Reference())
	assert.Equal(t, domain.BooleanKind, c.Kind())
	assert.Equal(t, "true-ish", c.String())
	assert.Equal(t, "false-ish", newComparator(false).String())
}
