package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/valyala/fasthttp"

	ish "github.com/baditaflorin/go_ish"
	"github.com/baditaflorin/go_ish/internal/adapters/logger"
	"github.com/baditaflorin/go_ish/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ish/internal/warmup"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use fasthttp's default
)

// Config is the server configuration, read from flags and ISH_* environment variables.
type Config struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	MaxRequestSize     int
	Concurrency        int
	WarmUp             bool
	LogFile            string
	VocabularyFile     string
	ClassifierURL      string
	ClassifierTimeout  time.Duration
	ClassifierCacheTTL time.Duration
	Tolerance          float64
}

func loadConfig(args []string) (Config, error) {
	fs := pflag.NewFlagSet("ish-server", pflag.ContinueOnError)
	fs.Int("port", DefaultPort, "HTTP server port")
	fs.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	fs.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	fs.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	fs.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent connections (0 = default)")
	fs.Bool("warm-up", true, "Perform system warm-up on startup")
	fs.String("log-file", "", "Log file path (empty = stdout)")
	fs.String("vocabulary", "", "YAML vocabulary replacing the built-in phrases")
	fs.String("classifier-url", "", "Emotion classifier endpoint (empty = emotion labels are not comparable)")
	fs.Duration("classifier-timeout", 10*time.Second, "Emotion classifier request timeout")
	fs.Duration("classifier-cache-ttl", 5*time.Minute, "How long classified images are remembered (0 = no cache)")
	fs.Float64("tolerance", ish.DefaultTolerance, "Default numeric tolerance")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("ISH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, errors.Wrap(err, "binding flags")
	}

	return Config{
		Port:               v.GetInt("port"),
		ReadTimeout:        v.GetDuration("read-timeout"),
		WriteTimeout:       v.GetDuration("write-timeout"),
		MaxRequestSize:     v.GetInt("max-request-size"),
		Concurrency:        v.GetInt("concurrency"),
		WarmUp:             v.GetBool("warm-up"),
		LogFile:            v.GetString("log-file"),
		VocabularyFile:     v.GetString("vocabulary"),
		ClassifierURL:      v.GetString("classifier-url"),
		ClassifierTimeout:  v.GetDuration("classifier-timeout"),
		ClassifierCacheTTL: v.GetDuration("classifier-cache-ttl"),
		Tolerance:          v.GetFloat64("tolerance"),
	}, nil
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(2)
	}

	lg, err := createLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Close()

	lg.Info("Starting ish HTTP server",
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"concurrency", cfg.Concurrency,
		"classifier", cfg.ClassifierURL != "",
	)

	opts, err := factoryOptions(cfg, lg)
	if err != nil {
		lg.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	srv, err := newServer(lg, opts...)
	if err != nil {
		lg.Error("Failed to initialize comparators", "error", err)
		os.Exit(1)
	}
	if cfg.WarmUp {
		warmUp(srv, lg)
	}

	server := &fasthttp.Server{
		Handler:               srv.requestHandler,
		Name:                  "IshServer",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		MaxRequestBodySize:    cfg.MaxRequestSize,
		Concurrency:           cfg.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lg.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			lg.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	lg.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		lg.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	lg.Info("Server stopped")
}

// factoryOptions turns the configuration into comparator options.
func factoryOptions(cfg Config, lg l.Logger) ([]ish.Option, error) {
	opts := []ish.Option{
		ish.WithLogger(lg),
		ish.WithFastNormalizer(),
		ish.WithTolerance(cfg.Tolerance),
	}
	if cfg.VocabularyFile != "" {
		f, err := os.Open(cfg.VocabularyFile)
		if err != nil {
			return nil, errors.Wrap(err, "opening vocabulary")
		}
		defer f.Close()
		v, err := ish.LoadVocabulary(f)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ish.WithVocabulary(v))
	}
	if cfg.ClassifierURL != "" {
		opts = append(opts,
			ish.WithRemoteClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout),
			ish.WithClassifierCache(cfg.ClassifierCacheTTL),
		)
	}
	return opts, nil
}

// warmUp exercises the normalizer and the boolean and numeric comparators
// before the first request arrives.
func warmUp(srv *server, lg l.Logger) {
	mgr := warmup.NewManager(logger.FromExisting(lg), warmup.DefaultWarmupConfig())
	mgr.RegisterNormalizer(normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.FastNormalizerType))
	for _, ref := range []interface{}{true, false, 5.0} {
		c, err := srv.factory.Build(ref)
		if err != nil {
			lg.Warn("Skipping warm-up comparator", "reference", ref, "error", err)
			continue
		}
		mgr.RegisterComparator(c)
	}
	mgr.WarmUp(context.Background())
	lg.Info("Comparators warmed up", "cpus", runtime.NumCPU())
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log file")
		}
		output = file
	}

	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	return lg, nil
}
