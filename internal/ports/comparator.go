package ports

import (
	"github.com/baditaflorin/go_ish/internal/core/domain"
)

// Comparator tests arbitrary candidate values against a fixed reference value.
// Implementations never mutate after construction and are safe for concurrent use.
type Comparator interface {
	// Equal reports whether candidate should be treated as equal to the reference.
	// It returns an error marked with domain.ErrAmbiguous when the candidate
	// cannot be interpreted.
	Equal(candidate interface{}) (bool, error)
	// Reference returns the value the comparator was built from.
	Reference() interface{}
	// Kind returns the comparison category.
	Kind() domain.Kind
	String() string
}

// OrderedComparator is a Comparator that also supports ordering checks.
// Each method answers "reference <op> candidate".
type OrderedComparator interface {
	Comparator
	Less(candidate interface{}) (bool, error)
	LessOrEqual(candidate interface{}) (bool, error)
	Greater(candidate interface{}) (bool, error)
	GreaterOrEqual(candidate interface{}) (bool, error)
}
