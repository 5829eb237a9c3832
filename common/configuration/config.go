package configuration

import (
	"strings"

	"github.com/Scusemua/go-utils/config"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	DefaultInitialSize  = 16
	DefaultLoadFactor   = 0.75
	DefaultGrowthFactor = 2

	DefaultBackend = "chained"
)

var (
	ErrInvalidOptions = errors.New("invalid options")
)

// MapOptions configures the bucket array of a chained hash map.
type MapOptions struct {
	InitialSize  int     `name:"initial-size"  json:"initial-size"  yaml:"initial-size"  description:"Number of buckets allocated when the map is created."`
	LoadFactor   float64 `name:"load-factor"   json:"load-factor"   yaml:"load-factor"   description:"Ratio of entries to buckets at which the bucket array is expanded."`
	GrowthFactor int     `name:"growth-factor" json:"growth-factor" yaml:"growth-factor" description:"Multiplier applied to the number of buckets when the map expands."`
}

// DefaultMapOptions returns 16 buckets, a 0.75 load factor and a growth factor of 2.
func DefaultMapOptions() *MapOptions {
	return &MapOptions{
		InitialSize:  DefaultInitialSize,
		LoadFactor:   DefaultLoadFactor,
		GrowthFactor: DefaultGrowthFactor,
	}
}

// Validate checks that the options describe a usable bucket array.
func (opts *MapOptions) Validate() error {
	if opts.InitialSize < 1 {
		return errors.Wrapf(ErrInvalidOptions, "initial size must be positive, got %d", opts.InitialSize)
	}

	if opts.LoadFactor <= 0 || opts.LoadFactor > 1 {
		return errors.Wrapf(ErrInvalidOptions, "load factor must be in (0, 1], got %v", opts.LoadFactor)
	}

	if opts.GrowthFactor < 2 {
		return errors.Wrapf(ErrInvalidOptions, "growth factor must be at least 2, got %d", opts.GrowthFactor)
	}

	return nil
}

func (opts *MapOptions) Clone() *MapOptions {
	clone := *opts
	return &clone
}

func (opts *MapOptions) String() string {
	m, err := json.Marshal(opts)
	if err != nil {
		panic(err)
	}

	return string(m)
}

// ShellOptions are the command-line options of the interactive shell.
type ShellOptions struct {
	config.LoggerOptions
	MapOptions

	Backend string `name:"backend" json:"backend" yaml:"backend" description:"Map implementation to drive: 'chained', 'locked', 'concurrent', 'cornelk', 'haxmap' or 'sync'."`
	Styled  bool   `name:"styled"  json:"styled"  yaml:"styled"  description:"Colour the output of the PRINT command."`

	PrometheusPort int `name:"prometheus-port" json:"prometheus-port" yaml:"prometheus-port" description:"Port on which to serve Prometheus metrics for the chained and locked backends. Disabled when <= 0."`

	// PrettyPrintOptions, when true, instructs the shell to pretty-print the ShellOptions
	// struct when the program first begins running.
	PrettyPrintOptions bool `name:"pretty_print_options" json:"pretty_print_options" yaml:"pretty_print_options"`
}

// DefaultShellOptions returns the shell defaults, driving the chained map.
func DefaultShellOptions() *ShellOptions {
	return &ShellOptions{
		MapOptions: *DefaultMapOptions(),
		Backend:    DefaultBackend,
	}
}

// Validate is called by config.ValidateOptions once the flags have been parsed.
func (opts *ShellOptions) Validate() error {
	if opts.Backend == "" {
		return errors.Wrap(ErrInvalidOptions, "backend must not be empty")
	}

	if opts.PrometheusPort > 65535 {
		return errors.Wrapf(ErrInvalidOptions, "prometheus port must be at most 65535, got %d", opts.PrometheusPort)
	}

	return opts.MapOptions.Validate()
}

// PrettyString is the same as String, except that PrettyString calls json.MarshalIndent instead of json.Marshal.
func (opts *ShellOptions) PrettyString(indentSize int) string {
	indentBuilder := strings.Builder{}
	for i := 0; i < indentSize; i++ {
		indentBuilder.WriteString(" ")
	}

	m, err := json.MarshalIndent(opts, "", indentBuilder.String())
	if err != nil {
		panic(err)
	}

	return string(m)
}

func (opts *ShellOptions) String() string {
	m, err := json.Marshal(opts)
	if err != nil {
		panic(err)
	}

	return string(m)
}
