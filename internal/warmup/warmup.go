package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_ish/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Stats counts the work done during a warmup.
type Stats struct {
	Normalizations int64
	Comparisons    int64
	// Comparisons that returned an error, such as ambiguous samples
	Rejected int64
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	comparators []ports.Comparator
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterComparator adds a comparator to be warmed up
func (wm *Manager) RegisterComparator(c ports.Comparator) {
	wm.comparators = append(wm.comparators, c)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.comparators)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	var stats Stats
	stats.Normalizations = wm.warmUpNormalizers(warmupCtx)
	stats.Comparisons, stats.Rejected = wm.warmUpComparators(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"normalizations", stats.Normalizations,
		"comparisons", stats.Comparisons,
		"rejected", stats.Rejected,
	)
	return stats
}

// run executes fn Iterations times on each of Concurrency goroutines until ctx is done.
func (wm *Manager) run(ctx context.Context, fn func(iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fn(j)
			}
		}()
	}
	wg.Wait()
}

func (wm *Manager) warmUpNormalizers(ctx context.Context) int64 {
	if len(wm.normalizers) == 0 {
		return 0
	}
	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	var count int64
	var mu sync.Mutex
	wm.run(ctx, func(j int) {
		phrase := samplePhrases[j%len(samplePhrases)]
		for _, n := range wm.normalizers {
			_ = n.Normalize(phrase)
		}
		mu.Lock()
		count += int64(len(wm.normalizers))
		mu.Unlock()
	})
	return count
}

func (wm *Manager) warmUpComparators(ctx context.Context) (int64, int64) {
	if len(wm.comparators) == 0 {
		return 0, 0
	}
	wm.logger.Debug("Warming up comparators", "count", len(wm.comparators))

	var compared, rejected int64
	var mu sync.Mutex
	wm.run(ctx, func(j int) {
		candidate := sampleCandidates[j%len(sampleCandidates)]
		var errs int64
		for _, c := range wm.comparators {
			if _, err := c.Equal(candidate); err != nil {
				errs++
			}
		}
		mu.Lock()
		compared += int64(len(wm.comparators))
		rejected += errs
		mu.Unlock()
	})
	return compared, rejected
}

// samplePhrases mixes padded, cased and punctuated phrases.
var samplePhrases = []string{
	"Yes", "  no  ", "TRUE!", "nope.", "Oui", "nein", "42", "0", "happy-face", "...omg...",
}

// sampleCandidates covers text, numbers and booleans.
var sampleCandidates = []interface{}{
	"yes", "No", "1", "0", "5.1", "4.9", "gibberish", 5, 0.5, true, false, "",
}
