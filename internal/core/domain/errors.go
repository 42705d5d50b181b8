package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotComparable marks reference values that no comparator can be built from.
	ErrNotComparable = errors.New("not comparable")
	// ErrAmbiguous marks candidate values a comparator could not interpret.
	ErrAmbiguous = errors.New("ambiguous")
)

// NotComparable returns an error for a reference value that can not be ished.
func NotComparable(value interface{}) error {
	return errors.Mark(errors.Newf("%s can not be ished!", Repr(value)), ErrNotComparable)
}

// Ambiguous returns an error for a candidate value that was not recognised.
func Ambiguous(value interface{}) error {
	return errors.Mark(errors.Newf("Maybe! (%s is not recognised)", Repr(value)), ErrAmbiguous)
}

// IsNotComparable reports whether err is marked as ErrNotComparable.
func IsNotComparable(err error) bool {
	return errors.Is(err, ErrNotComparable)
}

// IsAmbiguous reports whether err is marked as ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguous)
}

// Repr renders a value for error messages and comparator names.
func Repr(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		return fmt.Sprintf("b%q", v)
	case *Array:
		if v == nil {
			return "(*Array)(nil)"
		}
		return v.String()
	case Array:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
