package ports

import (
	"github.com/baditaflorin/go_ish/internal/core/domain"
)

// Vocabulary answers membership questions about normalized phrases.
type Vocabulary interface {
	IsTrue(phrase string) bool
	IsFalse(phrase string) bool
	Emotion(keyword string) (domain.Emotion, bool)
}
