package ports

import (
	"github.com/baditaflorin/go_ish/internal/core/domain"
)

// Classifier maps an image to a discrete emotion code.
type Classifier interface {
	Classify(img *domain.Array) (domain.Emotion, error)
}
