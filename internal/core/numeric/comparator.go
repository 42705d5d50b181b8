// Package numeric implements fuzzy equality and ordering against a number.
package numeric

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// DefaultTolerance is the half width of the interval around the reference.
const DefaultTolerance = 0.20001

// Config holds configuration for the numeric comparator.
type Config struct {
	Tolerance float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return errors.New("tolerance must be finite")
	}
	if c.Tolerance < 0 {
		return errors.New("tolerance must not be negative")
	}
	return nil
}

// Comparator treats numbers inside [reference-tolerance, reference+tolerance]
// as equal to the reference.
type Comparator struct {
	reference interface{}
	min       float64
	max       float64
	logger    ports.Logger
}

// NewComparator creates a numeric comparator. The reference must be a Go
// integer or floating point number.
func NewComparator(reference interface{}, config Config, logger ports.Logger) (*Comparator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	value, ok := domain.Float(reference)
	if !ok {
		return nil, domain.NotComparable(reference)
	}

	return &Comparator{
		reference: reference,
		min:       value - config.Tolerance,
		max:       value + config.Tolerance,
		logger:    logger,
	}, nil
}

// Bounds returns the closed interval of values equal to the reference.
func (c *Comparator) Bounds() (min, max float64) {
	return c.min, c.max
}

// Equal reports whether candidate converts to a number inside the interval.
func (c *Comparator) Equal(candidate interface{}) (bool, error) {
	n, err := ToNumber(candidate)
	if err != nil {
		return false, err
	}
	equal := c.min <= n && n <= c.max
	c.logger.Debug("Compared number", "candidate", n, "min", c.min, "max", c.max, "equal", equal)
	return equal, nil
}

// Less reports whether candidate lies strictly above the lower bound.
// It is one sided: a candidate inside the interval is both equal and greater.
func (c *Comparator) Less(candidate interface{}) (bool, error) {
	n, err := ToNumber(candidate)
	if err != nil {
		return false, err
	}
	return c.min < n, nil
}

// LessOrEqual is Less or Equal.
func (c *Comparator) LessOrEqual(candidate interface{}) (bool, error) {
	less, err := c.Less(candidate)
	if err != nil || less {
		return less, err
	}
	return c.Equal(candidate)
}

// Greater is neither Less nor Equal.
func (c *Comparator) Greater(candidate interface{}) (bool, error) {
	le, err := c.LessOrEqual(candidate)
	if err != nil {
		return false, err
	}
	return !le, nil
}

// GreaterOrEqual is not Less.
func (c *Comparator) GreaterOrEqual(candidate interface{}) (bool, error) {
	less, err := c.Less(candidate)
	if err != nil {
		return false, err
	}
	return !less, nil
}

// Reference returns the reference number as it was given.
func (c *Comparator) Reference() interface{} {
	return c.reference
}

// Kind returns domain.NumericKind.
func (c *Comparator) Kind() domain.Kind {
	return domain.NumericKind
}

func (c *Comparator) String() string {
	return fmt.Sprintf("%v-ish", c.reference)
}

// ToNumber converts a candidate to float64. Go numbers are used directly,
// booleans count as 1 and 0, and text is parsed as a float and then as an
// integer. Anything else is ambiguous.
func ToNumber(candidate interface{}) (float64, error) {
	switch v := candidate.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return parseNumber(string(v), candidate)
	}
	if f, ok := domain.Float(candidate); ok {
		return f, nil
	}
	if text, ok := domain.Text(candidate); ok {
		return parseNumber(text, candidate)
	}
	return 0, domain.Ambiguous(candidate)
}

func parseNumber(text string, candidate interface{}) (float64, error) {
	text = strings.TrimSpace(text)
	if hexPrefixed(text) {
		return 0, domain.Ambiguous(candidate)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return f, nil
	}
	if n, ok := domain.ParseInteger(text); ok {
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, nil
	}
	return 0, domain.Ambiguous(candidate)
}

// hexPrefixed reports whether text starts with an optionally signed 0x or 0X.
// Hex literals are Go syntax, not decimal numbers.
func hexPrefixed(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return len(text) >= 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}
