package domain

// Kind identifies the comparison category of a comparator.
type Kind int

const (
	// BooleanKind compares candidates against true or false.
	BooleanKind Kind = iota
	// NumericKind compares candidates against a number within a tolerance interval.
	NumericKind
	// EmotionKind compares image candidates against an emotion label.
	EmotionKind
)

func (k Kind) String() string {
	switch k {
	case BooleanKind:
		return "boolean"
	case NumericKind:
		return "numeric"
	case EmotionKind:
		return "emotion"
	default:
		return "unknown"
	}
}
