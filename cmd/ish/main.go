package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/baditaflorin/l"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	ish "github.com/baditaflorin/go_ish"
)

// Exit codes
const (
	exitAmbiguous     = 2
	exitNotComparable = 3
)

type compareFlags struct {
	op                string
	tolerance         float64
	imagePath         string
	classifierURL     string
	classifierTimeout time.Duration
	vocabularyPath    string
	verbose           bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case ish.IsAmbiguous(err):
		return exitAmbiguous
	case ish.IsNotComparable(err):
		return exitNotComparable
	default:
		return 1
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "ish",
		Short:         "Fuzzy comparisons: is a value true-ish, 5-ish or happy-ish?",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newCompareCmd(stdout))
	return root
}

func newCompareCmd(stdout io.Writer) *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:   "compare REFERENCE [CANDIDATE]",
		Short: "Compare a candidate with a reference value",
		Long: `Compare a candidate with a reference value.

REFERENCE "true" and "false" build a boolean comparator, numbers a numeric
comparator and anything else an emotion comparator, which needs --image and
--classifier-url. Exits 2 when the candidate is ambiguous and 3 when the
reference is not comparable.`,
		Example: `  ish compare true Yup
  ish compare 5 5.1 --op lt
  ish compare happy --image face.png --classifier-url http://localhost:9000/classify`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cleanup, err := flags.options(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			candidate, err := flags.candidate(args)
			if err != nil {
				return err
			}

			f, err := ish.NewFactory(opts...)
			if err != nil {
				return err
			}
			c, err := f.Build(ParseReference(args[0]))
			if err != nil {
				return err
			}
			result, err := compare(c, flags.op, candidate)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.op, "op", "eq", "Comparison: eq, lt, le, gt or ge (reference op candidate)")
	cmd.Flags().Float64Var(&flags.tolerance, "tolerance", ish.DefaultTolerance, "Numeric tolerance")
	cmd.Flags().StringVar(&flags.imagePath, "image", "", "PNG, JPEG or GIF file used as the candidate")
	cmd.Flags().StringVar(&flags.classifierURL, "classifier-url", "", "Emotion classifier endpoint")
	cmd.Flags().DurationVar(&flags.classifierTimeout, "classifier-timeout", 10*time.Second, "Emotion classifier request timeout")
	cmd.Flags().StringVar(&flags.vocabularyPath, "vocabulary", "", "YAML vocabulary replacing the built-in phrases")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log comparison steps to stderr")
	return cmd
}

// options translates the flags into comparator options. With --verbose,
// debug records go to stderr. The returned cleanup releases the logger.
func (f *compareFlags) options(stderr io.Writer) ([]ish.Option, func(), error) {
	cfg := l.Config{
		Output:     io.Discard,
		JsonFormat: false,
		AddSource:  false,
	}
	if f.verbose {
		cfg.Output = uncloseable{stderr}
		cfg.Level = l.LevelDebug
	}
	lg, err := l.NewStandardFactory().CreateLogger(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating logger")
	}
	cleanup := func() { _ = lg.Close() }

	opts := []ish.Option{ish.WithLogger(lg), ish.WithTolerance(f.tolerance)}
	if f.vocabularyPath != "" {
		file, err := os.Open(f.vocabularyPath)
		if err != nil {
			cleanup()
			return nil, nil, errors.Wrap(err, "opening vocabulary")
		}
		defer file.Close()
		v, err := ish.LoadVocabulary(file)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, ish.WithVocabulary(v))
	}
	if f.classifierURL != "" {
		opts = append(opts, ish.WithRemoteClassifier(f.classifierURL, f.classifierTimeout))
	}
	return opts, cleanup, nil
}

// uncloseable hides Close so closing the logger leaves stderr open.
type uncloseable struct {
	io.Writer
}

// candidate returns the decoded --image, or the second argument as text.
func (f *compareFlags) candidate(args []string) (interface{}, error) {
	if f.imagePath != "" {
		return loadImage(f.imagePath)
	}
	if len(args) < 2 {
		return nil, errors.New("a CANDIDATE argument or --image is required")
	}
	return args[1], nil
}

func loadImage(path string) (*ish.Array, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image %s", path)
	}
	return ish.ArrayFromImage(img), nil
}

// ParseReference interprets a command line reference: "true" and "false"
// are booleans, numeric literals are numbers, anything else is a label.
func ParseReference(arg string) interface{} {
	switch arg {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return f
	}
	return arg
}

func compare(c ish.Comparator, op string, candidate interface{}) (bool, error) {
	if op == "eq" {
		return c.Equal(candidate)
	}
	o, ok := c.(ish.OrderedComparator)
	if !ok {
		return false, errors.Newf("%s does not support --op %s", c, op)
	}
	switch op {
	case "lt":
		return o.Less(candidate)
	case "le":
		return o.LessOrEqual(candidate)
	case "gt":
		return o.Greater(candidate)
	case "ge":
		return o.GreaterOrEqual(candidate)
	default:
		return false, errors.Newf("unknown --op %q", op)
	}
}
