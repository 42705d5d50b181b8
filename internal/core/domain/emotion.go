package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Emotion is a discrete emotion code as returned by a face emotion classifier.
// Values follow the classifier's label indices, hence the gaps.
type Emotion int

const (
	Angry     Emotion = 0
	Happy     Emotion = 3
	Sad       Emotion = 4
	Surprised Emotion = 5
	Neutral   Emotion = 6
)

// Emotions lists every supported emotion code.
var Emotions = []Emotion{Angry, Happy, Sad, Surprised, Neutral}

var emotionNames = map[Emotion]string{
	Angry:     "angry",
	Happy:     "happy",
	Sad:       "sad",
	Surprised: "surprised",
	Neutral:   "neutral",
}

func (e Emotion) String() string {
	if name, ok := emotionNames[e]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether e is one of the supported codes.
func (e Emotion) Valid() bool {
	_, ok := emotionNames[e]
	return ok
}

// ParseEmotion resolves a canonical emotion name ("happy", "sad", ...).
func ParseEmotion(name string) (Emotion, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for code, n := range emotionNames {
		if n == name {
			return code, nil
		}
	}
	return 0, errors.Newf("unknown emotion %q", name)
}
