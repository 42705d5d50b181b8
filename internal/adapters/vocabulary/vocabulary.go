// Package vocabulary holds the phrase lists consumed by the comparators.
package vocabulary

import (
	_ "embed"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_ish/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/ports"
)

//go:embed words.yaml
var defaultWords []byte

// file is the YAML layout of a vocabulary.
type file struct {
	True     []string            `yaml:"true"`
	False    []string            `yaml:"false"`
	Emotions map[string][]string `yaml:"emotions"`
}

// Vocabulary is a read-only set of boolean words and emotion keywords.
// Entries are stored normalized.
type Vocabulary struct {
	truthy   map[string]struct{}
	falsy    map[string]struct{}
	emotions map[string]domain.Emotion
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

// Default returns the built-in vocabulary. It is parsed once per process.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		v, err := parse(defaultWords, normalizer.NewDefaultNormalizer())
		if err != nil {
			panic(errors.Wrap(err, "vocabulary: embedded words.yaml"))
		}
		defaultVocab = v
	})
	return defaultVocab
}

// Load reads a vocabulary in the words.yaml layout. Phrases are normalized
// with n so they match normalized candidates.
func Load(r io.Reader, n ports.Normalizer) (*Vocabulary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading vocabulary")
	}
	return parse(raw, n)
}

func parse(raw []byte, n ports.Normalizer) (*Vocabulary, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "decoding vocabulary")
	}

	v := &Vocabulary{
		truthy:   make(map[string]struct{}, len(f.True)),
		falsy:    make(map[string]struct{}, len(f.False)),
		emotions: make(map[string]domain.Emotion),
	}
	for _, w := range f.True {
		v.truthy[n.Normalize(w)] = struct{}{}
	}
	for _, w := range f.False {
		v.falsy[n.Normalize(w)] = struct{}{}
	}
	for name, keywords := range f.Emotions {
		code, err := domain.ParseEmotion(name)
		if err != nil {
			return nil, errors.Wrap(err, "decoding vocabulary")
		}
		for _, kw := range keywords {
			v.emotions[n.Normalize(kw)] = code
		}
	}
	return v, nil
}

// IsTrue reports whether a normalized phrase is an affirmative.
func (v *Vocabulary) IsTrue(phrase string) bool {
	_, ok := v.truthy[phrase]
	return ok
}

// IsFalse reports whether a normalized phrase is a negative.
func (v *Vocabulary) IsFalse(phrase string) bool {
	_, ok := v.falsy[phrase]
	return ok
}

// Emotion resolves a normalized keyword to its emotion code.
func (v *Vocabulary) Emotion(keyword string) (domain.Emotion, bool) {
	code, ok := v.emotions[keyword]
	return code, ok
}
