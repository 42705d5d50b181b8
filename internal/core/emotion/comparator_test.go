package emotion

import (
	"image"
	"image/color"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_ish/internal/adapters/logger"
	"github.com/baditaflorin/go_ish/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ish/internal/adapters/vocabulary"
	"github.com/baditaflorin/go_ish/internal/core/domain"
)

// stubClassifier returns a fixed emotion and counts calls.
type stubClassifier struct {
	emotion domain.Emotion
	err     error
	calls   int
}

func (s *stubClassifier) Classify(img *domain.Array) (domain.Emotion, error) {
	s.calls++
	return s.emotion, s.err
}

func newComparator(t *testing.T, label interface{}, c *stubClassifier) *Comparator {
	t.Helper()
	cmp, err := NewComparator(label, vocabulary.Default(), normalizer.NewDefaultNormalizer(), c, logger.NewNopLogger())
	require.NoError(t, err)
	return cmp
}

func mustArray(t *testing.T, shape ...int) *domain.Array {
	t.Helper()
	size := 1
	for _, d := range shape {
		size *= d
	}
	arr, err := domain.NewArray(shape, make([]float64, size))
	require.NoError(t, err)
	return arr
}

func TestLabelResolution(t *testing.T) {
	tests := []struct {
		label interface{}
		want  domain.Emotion
	}{
		{"happy", domain.Happy},
		{" Happy-Face! ", domain.Happy},
		{"JOYFUL", domain.Happy},
		{"anger", domain.Angry},
		{"grrr", domain.Angry},
		{"depressed", domain.Sad},
		{"omg", domain.Surprised},
		{"shock", domain.Surprised},
		{"neutral", domain.Neutral},
		{[]byte("emo"), domain.Sad},
	}
	for _, tc := range tests {
		c := newComparator(t, tc.label, &stubClassifier{})
		assert.Equal(t, tc.want, c.Code(), "%v", tc.label)
	}
}

func TestConstructionFailures(t *testing.T) {
	vocab := vocabulary.Default()
	norm := normalizer.NewDefaultNormalizer()
	nop := logger.NewNopLogger()

	_, err := NewComparator("happy", vocab, norm, nil, nop)
	assert.True(t, domain.IsNotComparable(err))

	_, err = NewComparator("bored", vocab, norm, &stubClassifier{}, nop)
	assert.True(t, domain.IsNotComparable(err))
	assert.Contains(t, err.Error(), `"bored" can not be ished!`)

	_, err = NewComparator(42, vocab, norm, &stubClassifier{}, nop)
	assert.True(t, domain.IsNotComparable(err))
}

func TestEqualImages(t *testing.T) {
	stub := &stubClassifier{emotion: domain.Happy}
	happy := newComparator(t, "happy", stub)
	sad := newComparator(t, "sad", stub)

	candidates := []interface{}{
		mustArray(t, 48, 48),
		mustArray(t, 48, 48, 3),
		*mustArray(t, 2, 2),
		image.NewGray(image.Rect(0, 0, 4, 4)),
		image.NewRGBA(image.Rect(0, 0, 4, 4)),
	}
	for _, candidate := range candidates {
		ok, err := happy.Equal(candidate)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = sad.Equal(candidate)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 2*len(candidates), stub.calls)
}

func TestEqualNotAnImage(t *testing.T) {
	stub := &stubClassifier{emotion: domain.Happy}
	c := newComparator(t, "happy", stub)

	candidates := []interface{}{
		"not an image",
		42,
		nil,
		(*domain.Array)(nil),
		mustArray(t, 10),
		mustArray(t, 4, 4, 4),
		mustArray(t, 1, 4, 4, 3),
	}
	for _, candidate := range candidates {
		_, err := c.Equal(candidate)
		assert.True(t, domain.IsAmbiguous(err), "%v", candidate)
	}
	assert.Zero(t, stub.calls)
}

func TestClassifierErrorPropagates(t *testing.T) {
	boom := errors.New("model not loaded")
	c := newComparator(t, "happy", &stubClassifier{err: boom})

	_, err := c.Equal(mustArray(t, 2, 2))
	assert.Same(t, boom, err)
}

func TestAsImageConvertsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	arr, ok := AsImage(img)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, arr.Shape())
	assert.Equal(t, 20.0, arr.At(0, 1, 1))
}

func TestAccessors(t *testing.T) {
	c := newComparator(t, "happy", &stubClassifier{})
	assert.Equal(t, "happy", c.Reference())
	assert.Equal(t, domain.EmotionKind, c.Kind())
	assert.Equal(t, `"happy"-ish`, c.String())
}
