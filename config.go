package response

import (
	"log/slog"

	"github.com/dmitrymomot/response/pkg/cookie"
	"github.com/dmitrymomot/response/pkg/file"
	"github.com/dmitrymomot/response/pkg/mimetype"
)

// Sink kinds accepted by Config.Server.
const (
	ServerStd      = "std"      // net/http ResponseWriter, the default
	ServerBuffered = "buffered" // in-memory body, committed on End
	ServerRaw      = "raw"      // hijacked connection written as HTTP/1.1
)

// Config holds formatter settings. Zero-valued fields of a hand-built Config
// are not replaced with defaults; start from DefaultConfig.
type Config struct {
	Server         string `env:"RESPONSE_SERVER" envDefault:"std"`
	Charset        string `env:"RESPONSE_CHARSET" envDefault:"utf-8"`
	NoContentOnNil bool   `env:"RESPONSE_NO_CONTENT_ON_NIL" envDefault:"true"` // Send(nil) answers 204
	EncodeLocation bool   `env:"RESPONSE_ENCODE_LOCATION" envDefault:"true"`   // percent-encode Location targets
	JSONPCallback  string `env:"RESPONSE_JSONP_CALLBACK" envDefault:"callback"`
	JSONEscapeHTML bool   `env:"RESPONSE_JSON_ESCAPE_HTML" envDefault:"false"`
	FileRoot       string `env:"RESPONSE_FILE_ROOT" envDefault:"."`
	MIMETypesFile  string `env:"RESPONSE_MIME_TYPES_FILE" envDefault:""`
}

// DefaultConfig returns the settings used by New.
func DefaultConfig() Config {
	return Config{
		Server:         ServerStd,
		Charset:        "utf-8",
		NoContentOnNil: true,
		EncodeLocation: true,
		JSONPCallback:  "callback",
		FileRoot:       ".",
	}
}

// Option configures a Factory.
type Option func(*options)

type options struct {
	cfg     Config
	mime    *mimetype.Table
	files   file.Source
	signer  *cookie.Signer
	cookies cookie.Options
	logger  *slog.Logger
}

// WithServer selects the sink kind.
func WithServer(kind string) Option {
	return func(o *options) { o.cfg.Server = kind }
}

// WithCharset sets the charset used by Type and the string body path.
func WithCharset(charset string) Option {
	return func(o *options) { o.cfg.Charset = charset }
}

// WithNoContentOnNil controls whether Send(nil) forces status 204.
func WithNoContentOnNil(enabled bool) Option {
	return func(o *options) { o.cfg.NoContentOnNil = enabled }
}

// WithEncodeLocation controls percent-encoding of Location targets.
func WithEncodeLocation(enabled bool) Option {
	return func(o *options) { o.cfg.EncodeLocation = enabled }
}

// WithJSONPCallback sets the callback name used by JSONP.
func WithJSONPCallback(name string) Option {
	return func(o *options) { o.cfg.JSONPCallback = name }
}

// WithJSONEscapeHTML makes JSON bodies escape <, > and &.
func WithJSONEscapeHTML(enabled bool) Option {
	return func(o *options) { o.cfg.JSONEscapeHTML = enabled }
}

// WithFileRoot sets the directory SendFile resolves paths against when no
// file source is configured.
func WithFileRoot(dir string) Option {
	return func(o *options) { o.cfg.FileRoot = dir }
}

// WithFileSource sets the source SendFile and Download read from.
func WithFileSource(src file.Source) Option {
	return func(o *options) {
		if src != nil {
			o.files = src
		}
	}
}

// WithMIMETable replaces the extension lookup table.
func WithMIMETable(t *mimetype.Table) Option {
	return func(o *options) {
		if t != nil {
			o.mime = t
		}
	}
}

// WithCookieDefaults sets the attributes every Cookie call starts from.
func WithCookieDefaults(opts cookie.Options) Option {
	return func(o *options) { o.cookies = opts }
}

// WithCookieSigner enables SignedCookie.
func WithCookieSigner(s *cookie.Signer) Option {
	return func(o *options) { o.signer = s }
}

// WithLogger supplies a logger. If nil, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
