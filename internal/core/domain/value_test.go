package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	var nilPtr *int
	var nilSlice []int
	one := 1

	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"nil", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"empty string", "", false},
		{"string", "x", true},
		{"empty bytes", []byte{}, false},
		{"bytes", []byte("x"), true},
		{"zero", 0, false},
		{"int", -3, true},
		{"zero uint", uint(0), false},
		{"zero float", 0.0, false},
		{"nan", math.NaN(), true},
		{"complex", complex(0, 1), true},
		{"nil pointer", nilPtr, false},
		{"pointer", &one, true},
		{"nil slice", nilSlice, false},
		{"empty map", map[int]int{}, false},
		{"map", map[int]int{1: 1}, true},
		{"empty array", [0]int{}, false},
		{"array", [1]int{0}, true},
		{"struct", struct{}{}, true},
		{"json zero", json.Number("0"), false},
		{"json number", json.Number("0.5"), true},
		{"json float zero", json.Number("0.0"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Truthy(tc.value))
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0", "0", true},
		{"42", "42", true},
		{"-42", "-42", true},
		{"+7", "7", true},
		{"1_000_000", "1000000", true},
		{"99999999999999999999999", "99999999999999999999999", true},
		{"", "", false},
		{"-", "", false},
		{"1.5", "", false},
		{"1__0", "", false},
		{"_1", "", false},
		{"1_", "", false},
		{"0x10", "", false},
		{"ten", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			n, ok := ParseInteger(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, n.String())
			}
		})
	}
}

func TestTextAndNumbers(t *testing.T) {
	s, ok := Text([]byte{'o', 0xff, 'k'})
	assert.True(t, ok)
	assert.Equal(t, "o�k", s)

	_, ok = Text(42)
	assert.False(t, ok)

	assert.True(t, IsNumber(3))
	assert.True(t, IsNumber(uint16(3)))
	assert.True(t, IsNumber(3.5))
	assert.False(t, IsNumber(true))
	assert.False(t, IsNumber("3"))
	assert.False(t, IsNumber(nil))

	f, ok := Float(int8(-2))
	assert.True(t, ok)
	assert.Equal(t, -2.0, f)
}

func TestErrors(t *testing.T) {
	err := NotComparable([]int{1})
	assert.ErrorIs(t, err, ErrNotComparable)
	assert.False(t, IsAmbiguous(err))
	assert.Equal(t, "[1] can not be ished!", err.Error())

	err = Ambiguous("Whatever")
	assert.ErrorIs(t, err, ErrAmbiguous)
	assert.False(t, IsNotComparable(err))
	assert.Equal(t, `Maybe! ("Whatever" is not recognised)`, err.Error())
}

func TestEmotion(t *testing.T) {
	assert.Equal(t, "happy", Happy.String())
	assert.Equal(t, "unknown", Emotion(1).String())
	assert.False(t, Emotion(2).Valid())
	assert.Len(t, Emotions, 5)

	for _, e := range Emotions {
		assert.True(t, e.Valid())
		parsed, err := ParseEmotion(" " + e.String() + " ")
		assert.NoError(t, err)
		assert.Equal(t, e, parsed)
	}

	_, err := ParseEmotion("disgust")
	assert.Error(t, err)

	assert.Equal(t, "emotion", EmotionKind.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
