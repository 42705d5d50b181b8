// Package boolean implements fuzzy equality against true or false.
package boolean

import (
	"fmt"

	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// Comparator treats yes/no phrases, integer strings and truthy values as
// equal to a fixed boolean reference.
type Comparator struct {
	reference  bool
	vocabulary ports.Vocabulary
	normalizer ports.Normalizer
	logger     ports.Logger
}

// NewComparator creates a boolean comparator.
func NewComparator(reference bool, vocabulary ports.Vocabulary, normalizer ports.Normalizer, logger ports.Logger) *Comparator {
	return &Comparator{
		reference:  reference,
		vocabulary: vocabulary,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Equal reports whether candidate means the same as the reference boolean.
//
// Only truthy candidates have their text inspected: an empty string is false
// without ever being looked up in the negative phrases.
func (c *Comparator) Equal(candidate interface{}) (bool, error) {
	result := domain.Truthy(candidate)

	if text, isText := domain.Text(candidate); result && isText {
		parsed, err := c.checkString(text)
		if err != nil {
			c.logger.Debug("Unrecognised boolean phrase", "candidate", text)
			return false, domain.Ambiguous(candidate)
		}
		result = parsed
	}

	c.logger.Debug("Compared boolean", "reference", c.reference, "candidate", candidate, "coerced", result)
	return result == c.reference, nil
}

func (c *Comparator) checkString(text string) (bool, error) {
	normalized := c.normalizer.Normalize(text)

	if n, ok := domain.ParseInteger(normalized); ok {
		return n.Sign() != 0, nil
	}
	if c.vocabulary.IsTrue(normalized) {
		return true, nil
	}
	if c.vocabulary.IsFalse(normalized) {
		return false, nil
	}
	return false, domain.ErrAmbiguous
}

// Reference returns the reference boolean.
func (c *Comparator) Reference() interface{} {
	return c.reference
}

// Kind returns domain.BooleanKind.
func (c *Comparator) Kind() domain.Kind {
	return domain.BooleanKind
}

func (c *Comparator) String() string {
	return fmt.Sprintf("%t-ish", c.reference)
}
