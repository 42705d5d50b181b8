// Package emotion implements fuzzy equality between an emotion label and
// images classified by a face emotion classifier.
package emotion

import (
	"fmt"
	"image"

	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// Comparator matches images whose classified emotion equals the code derived
// from its label.
type Comparator struct {
	label      interface{}
	code       domain.Emotion
	classifier ports.Classifier
	logger     ports.Logger
}

// NewComparator resolves label (a string or byte slice) against the emotion
// keywords of vocabulary. It fails with domain.ErrNotComparable when no
// classifier is available or the label matches no keyword.
func NewComparator(label interface{}, vocabulary ports.Vocabulary, normalizer ports.Normalizer, classifier ports.Classifier, logger ports.Logger) (*Comparator, error) {
	if classifier == nil {
		logger.Debug("No emotion classifier configured", "label", label)
		return nil, domain.NotComparable(label)
	}
	text, ok := domain.Text(label)
	if !ok {
		return nil, domain.NotComparable(label)
	}
	code, ok := vocabulary.Emotion(normalizer.Normalize(text))
	if !ok {
		logger.Debug("Unknown emotion label", "label", text)
		return nil, domain.NotComparable(label)
	}

	return &Comparator{
		label:      label,
		code:       code,
		classifier: classifier,
		logger:     logger,
	}, nil
}

// Code returns the emotion code the label resolved to.
func (c *Comparator) Code() domain.Emotion {
	return c.code
}

// Equal classifies candidate and reports whether its emotion matches.
// Candidates that are not image shaped are ambiguous. Classifier errors are
// returned as they are.
func (c *Comparator) Equal(candidate interface{}) (bool, error) {
	img, ok := AsImage(candidate)
	if !ok {
		return false, domain.Ambiguous(candidate)
	}

	got, err := c.classifier.Classify(img)
	if err != nil {
		return false, err
	}
	c.logger.Debug("Classified image", "shape", img.Shape(), "emotion", got, "want", c.code)
	return got == c.code, nil
}

// AsImage returns candidate as an image shaped array: a 2 dimensional array,
// a 3 dimensional array with three channels, or any image.Image.
func AsImage(candidate interface{}) (*domain.Array, bool) {
	var arr *domain.Array
	switch v := candidate.(type) {
	case *domain.Array:
		arr = v
	case domain.Array:
		arr = &v
	case image.Image:
		if v == nil {
			return nil, false
		}
		arr = domain.FromImage(v)
	}
	if arr == nil || !arr.IsImage() {
		return nil, false
	}
	return arr, true
}

// Reference returns the label as it was given.
func (c *Comparator) Reference() interface{} {
	return c.label
}

// Kind returns domain.EmotionKind.
func (c *Comparator) Kind() domain.Kind {
	return domain.EmotionKind
}

func (c *Comparator) String() string {
	return fmt.Sprintf("%s-ish", domain.Repr(c.label))
}
