package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_ish/internal/ports"
)

// StripChars are trimmed from both ends of a phrase: ASCII whitespace
// followed by ASCII punctuation.
const StripChars = " \t\n\r\x0b\x0c" + "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// DefaultNormalizer implements the default phrase normalization strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize trims whitespace and punctuation from both ends and lowercases the rest.
func (n *DefaultNormalizer) Normalize(text string) string {
	return strings.ToLower(strings.Trim(text, StripChars))
}
