// Package factory picks the comparator strategy for a reference value.
package factory

import (
	"github.com/baditaflorin/go_ish/internal/core/boolean"
	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/core/emotion"
	"github.com/baditaflorin/go_ish/internal/core/numeric"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// Dependencies are the collaborators shared by every comparator a Factory builds.
// Classifier may be nil, in which case emotion comparators can not be built.
type Dependencies struct {
	Vocabulary ports.Vocabulary
	Normalizer ports.Normalizer
	Classifier ports.Classifier
	Logger     ports.Logger
}

// Factory builds comparators. It holds no mutable state and is safe for
// concurrent use.
type Factory struct {
	numeric numeric.Config
	deps    Dependencies
}

// New creates a factory after validating the numeric configuration.
func New(config numeric.Config, deps Dependencies) (*Factory, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Factory{numeric: config, deps: deps}, nil
}

// Build returns the comparator for reference: booleans get a boolean
// comparator, numbers a numeric one and text an emotion one. Booleans are
// checked first so they never take the numeric path. Any other reference
// fails with domain.ErrNotComparable.
func (f *Factory) Build(reference interface{}) (ports.Comparator, error) {
	if ref, ok := reference.(bool); ok {
		return boolean.NewComparator(ref, f.deps.Vocabulary, f.deps.Normalizer, f.deps.Logger), nil
	}

	if domain.IsNumber(reference) {
		c, err := numeric.NewComparator(reference, f.numeric, f.deps.Logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	if domain.IsText(reference) {
		c, err := emotion.NewComparator(reference, f.deps.Vocabulary, f.deps.Normalizer, f.deps.Classifier, f.deps.Logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	f.deps.Logger.Debug("Unsupported reference", "reference", reference)
	return nil, domain.NotComparable(reference)
}
