package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrymomot/response/pkg/charset"
	"github.com/dmitrymomot/response/pkg/cookie"
	"github.com/dmitrymomot/response/pkg/file"
	"github.com/dmitrymomot/response/pkg/logger"
	"github.com/dmitrymomot/response/pkg/mimetype"
)

// Response formats exactly one outgoing HTTP response on top of a Sink.
// It is not safe for concurrent use.
type Response struct {
	sink    Sink
	req     *http.Request
	cfg     Config
	mime    *mimetype.Table
	files   func() (file.Source, error)
	signer  *cookie.Signer
	cookies cookie.Options
	log     *slog.Logger

	// Locals is scratch space for handlers sharing data while building the
	// response.
	Locals map[string]any
}

// Factory resolves configuration once and creates a Response per exchange.
// It is safe for concurrent use.
type Factory struct {
	opts options
	kind sinkFactory

	filesOnce sync.Once
	files     file.Source
	filesErr  error
}

// NewFactory validates cfg and the options. An unknown sink kind or charset
// yields ErrUnsupportedConfiguration.
func NewFactory(cfg Config, opts ...Option) (*Factory, error) {
	o := options{cfg: cfg}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	kind, sf, ok := lookupSinkKind(o.cfg.Server)
	if !ok {
		return nil, fmt.Errorf("%w: unknown server kind %q", ErrUnsupportedConfiguration, o.cfg.Server)
	}
	o.cfg.Server = kind

	if err := charset.Validate(o.cfg.Charset); err != nil {
		return nil, errors.Join(ErrUnsupportedConfiguration, err)
	}

	if o.mime == nil {
		o.mime = mimetype.New()
		if o.cfg.MIMETypesFile != "" {
			if err := o.mime.LoadFile(o.cfg.MIMETypesFile); err != nil {
				return nil, errors.Join(ErrUnsupportedConfiguration, err)
			}
		}
	}

	return &Factory{opts: o, kind: sf}, nil
}

// New creates a Response writing through w.
func (f *Factory) New(w http.ResponseWriter, r *http.Request) (*Response, error) {
	sink, err := f.kind(w, r)
	if err != nil {
		return nil, err
	}
	return f.wrap(sink, r), nil
}

func (f *Factory) wrap(sink Sink, r *http.Request) *Response {
	o := f.opts
	return &Response{
		sink:    sink,
		req:     r,
		cfg:     o.cfg,
		mime:    o.mime,
		files:   f.fileSource,
		signer:  o.signer,
		cookies: o.cookies,
		log:     o.logger.With(logger.Component("response"), logger.Sink(o.cfg.Server)),
	}
}

func (f *Factory) fileSource() (file.Source, error) {
	f.filesOnce.Do(func() {
		if f.opts.files != nil {
			f.files = f.opts.files
			return
		}
		f.files, f.filesErr = file.NewLocal(f.opts.cfg.FileRoot)
	})
	return f.files, f.filesErr
}

// New creates a Response with DefaultConfig adjusted by opts.
func New(w http.ResponseWriter, r *http.Request, opts ...Option) (*Response, error) {
	return NewFromConfig(DefaultConfig(), w, r, opts...)
}

// NewFromConfig creates a Response from an explicit configuration, typically
// one loaded from the environment.
func NewFromConfig(cfg Config, w http.ResponseWriter, r *http.Request, opts ...Option) (*Response, error) {
	f, err := NewFactory(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return f.New(w, r)
}

// NewWithSink creates a Response over a caller-supplied sink. Config.Server
// is ignored.
func NewWithSink(sink Sink, r *http.Request, opts ...Option) (*Response, error) {
	if sink == nil {
		return nil, fmt.Errorf("%w: nil sink", ErrInvalidArgument)
	}
	f, err := NewFactory(DefaultConfig(), opts...)
	if err != nil {
		return nil, err
	}
	return f.wrap(sink, r), nil
}

// Sink returns the underlying sink.
func (res *Response) Sink() Sink { return res.sink }

// Request returns the request this response answers, possibly nil.
func (res *Response) Request() *http.Request { return res.req }

// Config returns the effective configuration.
func (res *Response) Config() Config { return res.cfg }

// Local returns a value stored with SetLocal.
func (res *Response) Local(key string) any {
	return res.Locals[key]
}

// SetLocal stores a value for the lifetime of the response.
func (res *Response) SetLocal(key string, value any) {
	if res.Locals == nil {
		res.Locals = make(map[string]any)
	}
	res.Locals[key] = value
}

// checkMutable guards header and status mutation.
func (res *Response) checkMutable(op string) error {
	switch {
	case res.sink.Ended():
		res.log.Warn("response already finalized", slog.String("op", op))
		return fmt.Errorf("%w: %s", ErrFinalized, op)
	case res.sink.HeadersSent():
		res.log.Warn("headers already sent", slog.String("op", op))
		return fmt.Errorf("%w: %s", ErrHeadersSent, op)
	}
	return nil
}

func (res *Response) checkOpen(op string) error {
	if res.sink.Ended() {
		res.log.Warn("response already finalized", slog.String("op", op))
		return fmt.Errorf("%w: %s", ErrFinalized, op)
	}
	return nil
}

// Status sets the status code and an optional reason phrase. Codes outside
// 100..999 are rejected.
func (res *Response) Status(code int, message ...string) error {
	if code < 100 || code > 999 {
		return fmt.Errorf("%w: status code %d", ErrInvalidArgument, code)
	}
	msg := ""
	if len(message) > 0 {
		msg = message[0]
		if !validHeaderValue(msg) {
			return fmt.Errorf("%w: status message %q", ErrInvalidArgument, msg)
		}
	}
	if err := res.checkMutable("status"); err != nil {
		return err
	}
	res.sink.SetStatus(code, msg)
	return nil
}

// StatusCode returns the current status code.
func (res *Response) StatusCode() int {
	code, _ := res.sink.Status()
	return code
}

// SendStatus sets the status and ends the response without a body.
func (res *Response) SendStatus(code int, message ...string) error {
	if err := res.Status(code, message...); err != nil {
		return err
	}
	return res.finish(nil)
}

// Write sends body bytes, committing headers on the first call.
func (res *Response) Write(p []byte) (int, error) {
	if err := res.checkOpen("write"); err != nil {
		return 0, err
	}
	return res.sink.Write(p)
}

// End sends p and terminates the response. No status or HEAD rules are
// applied; use Send for that.
func (res *Response) End(p []byte) error {
	if err := res.checkOpen("end"); err != nil {
		return err
	}
	return res.sink.End(p)
}

// FlushHeaders commits the status line and headers.
func (res *Response) FlushHeaders() error {
	if err := res.checkOpen("flush"); err != nil {
		return err
	}
	return res.sink.FlushHeaders()
}

// HeadersSent reports whether headers were committed.
func (res *Response) HeadersSent() bool { return res.sink.HeadersSent() }

// Finished reports whether the response was ended.
func (res *Response) Finished() bool { return res.sink.Ended() }

func (res *Response) isHead() bool {
	return res.req != nil && strings.EqualFold(res.req.Method, http.MethodHead)
}
