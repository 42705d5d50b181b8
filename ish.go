// ish.go

// Package ish builds fuzzy comparators: objects that decide whether loosely
// represented values should count as equal to a reference value.
//
// The reference value picks the strategy:
//
//	true, false      yes/no phrases in several languages, integer strings, truthiness
//	numbers          values within ±tolerance (default 0.20001), plus ordering
//	text             an emotion label matched against classified images
//
// A candidate a comparator can not interpret yields ErrAmbiguous rather than
// false, so "not equal" and "could not tell" stay distinct.
package ish

import (
	"time"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_ish/internal/adapters/classifier"
	"github.com/baditaflorin/go_ish/internal/adapters/logger"
	"github.com/baditaflorin/go_ish/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ish/internal/adapters/vocabulary"
	"github.com/baditaflorin/go_ish/internal/core/domain"
	"github.com/baditaflorin/go_ish/internal/core/factory"
	"github.com/baditaflorin/go_ish/internal/core/numeric"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// Config holds configuration options for building comparators.
type Config struct {
	Tolerance  float64
	Logger     ports.Logger
	Normalizer ports.Normalizer
	Vocabulary ports.Vocabulary
	Classifier ports.Classifier
	// CacheTTL wraps the classifier in a result cache when non-zero.
	CacheTTL time.Duration
	// RemoteURL, when set, replaces Classifier with an HTTP classifier.
	RemoteURL     string
	RemoteTimeout time.Duration
}

// Option defines a functional option for configuring comparators.
type Option func(*Config)

// WithTolerance sets the half width of the numeric equality interval.
func WithTolerance(tolerance float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = tolerance
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom phrase normalizer.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *Config) {
		cfg.Normalizer = n
	}
}

// WithFastNormalizer sets the table driven normalizer.
func WithFastNormalizer() Option {
	return func(cfg *Config) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.FastNormalizerType)
	}
}

// WithVocabulary replaces the built-in phrase lists. A nil vocabulary keeps them.
func WithVocabulary(v *Vocabulary) Option {
	return func(cfg *Config) {
		if v != nil {
			cfg.Vocabulary = v
		}
	}
}

// WithClassifier sets the emotion classifier. Without one, text references
// are not comparable.
func WithClassifier(c Classifier) Option {
	return func(cfg *Config) {
		cfg.Classifier = c
	}
}

// WithClassifierFunc sets a function as the emotion classifier.
func WithClassifierFunc(fn func(img *Array) (Emotion, error)) Option {
	return func(cfg *Config) {
		cfg.Classifier = classifier.Func(fn)
	}
}

// WithRemoteClassifier classifies images through an HTTP inference endpoint.
// A timeout of zero uses the default of ten seconds.
func WithRemoteClassifier(url string, timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.RemoteURL = url
		cfg.RemoteTimeout = timeout
	}
}

// WithClassifierCache caches classification results for ttl.
// A negative ttl keeps results forever.
func WithClassifierCache(ttl time.Duration) Option {
	return func(cfg *Config) {
		cfg.CacheTTL = ttl
	}
}

// Factory builds comparators sharing one configuration.
// It is immutable and safe for concurrent use.
type Factory struct {
	factory *factory.Factory
}

// NewFactory creates a Factory with the provided functional options.
// If no logger is provided, the shared default logger is used.
func NewFactory(opts ...Option) (*Factory, error) {
	cfg := Config{
		Tolerance: numeric.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = defaultLogger()
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = vocabulary.Default()
	}
	if cfg.RemoteURL != "" {
		remoteOpts := []classifier.RemoteOption{classifier.WithRemoteLogger(cfg.Logger)}
		if cfg.RemoteTimeout != 0 {
			remoteOpts = append(remoteOpts, classifier.WithTimeout(cfg.RemoteTimeout))
		}
		remote, err := classifier.NewRemote(cfg.RemoteURL, remoteOpts...)
		if err != nil {
			return nil, err
		}
		cfg.Classifier = remote
	}
	if cfg.Classifier != nil && cfg.CacheTTL != 0 {
		cfg.Classifier = classifier.NewCached(cfg.Classifier, cfg.CacheTTL)
	}

	f, err := factory.New(numeric.Config{Tolerance: cfg.Tolerance}, factory.Dependencies{
		Vocabulary: cfg.Vocabulary,
		Normalizer: cfg.Normalizer,
		Classifier: cfg.Classifier,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Factory{factory: f}, nil
}

// Build returns the comparator for reference. Booleans yield a boolean
// comparator, Go numbers a numeric comparator and strings or byte slices an
// emotion comparator. Other references fail with ErrNotComparable, as do
// emotion labels when no classifier is configured or the label is unknown.
func (f *Factory) Build(reference interface{}) (Comparator, error) {
	return f.factory.Build(reference)
}

// BuildOrdered is Build restricted to references whose comparator supports
// ordering, that is numbers.
func (f *Factory) BuildOrdered(reference interface{}) (OrderedComparator, error) {
	c, err := f.Build(reference)
	if err != nil {
		return nil, err
	}
	o, ok := c.(OrderedComparator)
	if !ok {
		return nil, domain.NotComparable(reference)
	}
	return o, nil
}

// New builds a comparator for reference with the given options.
func New(reference interface{}, opts ...Option) (Comparator, error) {
	f, err := NewFactory(opts...)
	if err != nil {
		return nil, err
	}
	return f.Build(reference)
}

// Equal builds a comparator for reference and compares candidate with it.
func Equal(reference, candidate interface{}, opts ...Option) (bool, error) {
	c, err := New(reference, opts...)
	if err != nil {
		return false, err
	}
	return c.Equal(candidate)
}
