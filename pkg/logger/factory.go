package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

func (f Format) valid() bool {
	return f == FormatJSON || f == FormatText
}

// Config is the environment driven logger setup.
type Config struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"json"`
	Service     string `env:"LOG_SERVICE" envDefault:"response"`
	Environment string `env:"APP_ENV" envDefault:"development"`
}

// Options translates cfg into factory options. The environment preset comes
// first; a parsable level and a known format override it.
func (c Config) Options() []Option {
	opts := []Option{WithEnvironment(c.Environment, c.Service)}

	var lvl slog.Level
	if c.Level != "" && lvl.UnmarshalText([]byte(c.Level)) == nil {
		opts = append(opts, WithLevel(lvl))
	}
	if f := Format(strings.ToLower(c.Format)); f.valid() {
		opts = append(opts, WithFormat(f))
	}
	return opts
}

// Option configures New.
type Option func(*settings)

type settings struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithFormat panics on anything but json or text, so a misconfigured
// service fails at startup.
func WithFormat(f Format) Option {
	if !f.valid() {
		panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
	}
	return func(s *settings) { s.format = f }
}

// WithOutput sets the destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors registers callbacks that add attributes from the
// context of each record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) { s.extractors = append(s.extractors, extractors...) }
}

// WithEnvironment applies a preset: "production" or "prod" log JSON at
// info, anything else text at debug. A non-empty service adds service and
// env attributes.
func WithEnvironment(env, service string) Option {
	return func(s *settings) {
		name := "development"
		s.level, s.format = slog.LevelDebug, FormatText
		if e := strings.ToLower(env); e == "production" || e == "prod" {
			name = "production"
			s.level, s.format = slog.LevelInfo, FormatJSON
		}
		if service != "" {
			s.attrs = append(s.attrs, slog.String("service", service), slog.String("env", name))
		}
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New creates a slog.Logger. Defaults are JSON at info level on stdout.
func New(opts ...Option) *slog.Logger {
	s := &settings{level: slog.LevelInfo, format: FormatJSON, output: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}

	hopts := &slog.HandlerOptions{Level: s.level}
	var h slog.Handler = slog.NewJSONHandler(s.output, hopts)
	if s.format == FormatText {
		h = slog.NewTextHandler(s.output, hopts)
	}
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}
	return slog.New(NewLogHandlerDecorator(h, s.extractors...))
}
