package normalizer

import (
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_ish/internal/ports"
)

// FastNormalizer trims with a precomputed ASCII table and lowercases
// ASCII-only phrases without going through the unicode tables.
type FastNormalizer struct {
	// strip[b] is true for ASCII bytes trimmed from the ends
	strip [128]bool
}

// NewFastNormalizer creates a new table driven normalizer.
func NewFastNormalizer() ports.Normalizer {
	n := &FastNormalizer{}
	for i := 0; i < len(StripChars); i++ {
		n.strip[StripChars[i]] = true
	}
	return n
}

// Normalize produces the same result as DefaultNormalizer.Normalize.
func (n *FastNormalizer) Normalize(text string) string {
	start, end := 0, len(text)
	for start < end && text[start] < utf8.RuneSelf && n.strip[text[start]] {
		start++
	}
	for end > start && text[end-1] < utf8.RuneSelf && n.strip[text[end-1]] {
		end--
	}
	text = text[start:end]

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= utf8.RuneSelf {
			return strings.ToLower(text)
		}
		if 'A' <= c && c <= 'Z' {
			return lowerASCII(text, i)
		}
	}
	return text
}

// lowerASCII lowercases an ASCII-only text whose first upper case byte is at from.
func lowerASCII(text string, from int) string {
	buf := []byte(text)
	for i := from; i < len(buf); i++ {
		c := buf[i]
		if c >= utf8.RuneSelf {
			return strings.ToLower(text)
		}
		if 'A' <= c && c <= 'Z' {
			buf[i] = c + ('a' - 'A')
		}
	}
	return string(buf)
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType trims and lowercases with the strings package
	DefaultNormalizerType NormalizerType = iota
	// FastNormalizerType uses a precomputed table and an ASCII fast path
	FastNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case FastNormalizerType:
		return NewFastNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
