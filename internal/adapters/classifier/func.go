// Package classifier provides emotion classifier collaborators.
package classifier

import (
	"github.com/baditaflorin/go_ish/internal/core/domain"
)

// Func adapts a plain function to ports.Classifier.
type Func func(img *domain.Array) (domain.Emotion, error)

// Classify calls f.
func (f Func) Classify(img *domain.Array) (domain.Emotion, error) {
	return f(img)
}
