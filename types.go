package ish

import (
	"io"

	"github.com/baditaflorin/go_ish/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ish/internal/adapters/vocabulary"
	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/core/numeric"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// Comparator tests candidates against the reference it was built from.
type Comparator = ports.Comparator

// OrderedComparator is a Comparator that also orders candidates. Numeric
// comparators implement it.
type OrderedComparator = ports.OrderedComparator

// Classifier maps an image to an emotion code.
type Classifier = ports.Classifier

// Normalizer normalizes phrases before they are looked up.
type Normalizer = ports.Normalizer

// Vocabulary holds the recognised yes/no phrases and emotion keywords.
type Vocabulary = vocabulary.Vocabulary

// Array is an n-dimensional numeric array, the image type classifiers receive.
type Array = domain.Array

// Emotion is a discrete emotion code.
type Emotion = domain.Emotion

// Kind is the comparison category of a comparator.
type Kind = domain.Kind

// Emotion codes.
const (
	Angry     = domain.Angry
	Happy     = domain.Happy
	Sad       = domain.Sad
	Surprised = domain.Surprised
	Neutral   = domain.Neutral
)

// Comparison categories.
const (
	BooleanKind = domain.BooleanKind
	NumericKind = domain.NumericKind
	EmotionKind = domain.EmotionKind
)

// DefaultTolerance is the default half width of the numeric interval.
const DefaultTolerance = numeric.DefaultTolerance

var (
	// ErrNotComparable is returned when no comparator can be built from a reference.
	ErrNotComparable = domain.ErrNotComparable
	// ErrAmbiguous is returned when a comparator can not interpret a candidate.
	ErrAmbiguous = domain.ErrAmbiguous
)

// IsNotComparable reports whether err is an ErrNotComparable.
func IsNotComparable(err error) bool { return domain.IsNotComparable(err) }

// IsAmbiguous reports whether err is an ErrAmbiguous.
func IsAmbiguous(err error) bool { return domain.IsAmbiguous(err) }

// NewArray creates an image array; see domain.NewArray.
var NewArray = domain.NewArray

// ArrayFromImage converts an image.Image into an Array.
var ArrayFromImage = domain.FromImage

// ArrayFromNested converts nested numeric slices into an Array.
var ArrayFromNested = domain.FromNested

// ParseEmotion resolves a canonical emotion name.
var ParseEmotion = domain.ParseEmotion

// DefaultVocabulary returns the built-in vocabulary.
func DefaultVocabulary() *Vocabulary {
	return vocabulary.Default()
}

// LoadVocabulary reads a YAML vocabulary with "true", "false" and "emotions" keys.
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	return vocabulary.Load(r, normalizer.NewDefaultNormalizer())
}
