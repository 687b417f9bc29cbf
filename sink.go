package response

import (
	"net/http"
	"net/textproto"
	"slices"
	"strings"
)

// Sink is the raw side of a response: it stores header fields and the status,
// and physically transmits them followed by the body.
//
// Header names are canonicalized by the sink. Values are kept as ordered
// sequences; when transmitted, Set-Cookie produces one field line per value
// and any other header is folded into a single comma separated line.
type Sink interface {
	SetHeader(name string, values []string)
	GetHeader(name string) []string
	Headers() http.Header
	HasHeader(name string) bool
	RemoveHeader(name string)

	SetStatus(code int, message string)
	Status() (code int, message string)

	// Write sends body bytes, flushing headers first if needed.
	Write(p []byte) (int, error)
	// End sends p (which may be empty) and terminates the response.
	End(p []byte) error
	// FlushHeaders commits the status line and headers.
	FlushHeaders() error

	HeadersSent() bool
	Ended() bool

	// Done is closed when the peer goes away. Streaming stops forwarding
	// bytes once it is closed.
	Done() <-chan struct{}
	// Abort tears the response down after a mid-stream failure.
	Abort(err error)
}

// headerState is the header table and status shared by the sink implementations.
type headerState struct {
	header  http.Header
	code    int
	message string
	sent    bool
	ended   bool
}

func newHeaderState(initial http.Header) headerState {
	h := initial.Clone()
	if h == nil {
		h = make(http.Header)
	}
	return headerState{header: h, code: http.StatusOK}
}

func (s *headerState) SetHeader(name string, values []string) {
	s.header[textproto.CanonicalMIMEHeaderKey(name)] = slices.Clone(values)
}

func (s *headerState) GetHeader(name string) []string {
	return slices.Clone(s.header[textproto.CanonicalMIMEHeaderKey(name)])
}

func (s *headerState) Headers() http.Header {
	return s.header.Clone()
}

func (s *headerState) HasHeader(name string) bool {
	_, ok := s.header[textproto.CanonicalMIMEHeaderKey(name)]
	return ok
}

func (s *headerState) RemoveHeader(name string) {
	delete(s.header, textproto.CanonicalMIMEHeaderKey(name))
}

func (s *headerState) SetStatus(code int, message string) {
	s.code = code
	s.message = message
}

func (s *headerState) Status() (int, string) {
	return s.code, s.message
}

func (s *headerState) HeadersSent() bool { return s.sent }

func (s *headerState) Ended() bool { return s.ended }

// wireHeader folds multi-value fields for transmission. Set-Cookie values
// cannot be combined (RFC 6265 section 3) and stay separate.
func wireHeader(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vv := range h {
		if len(vv) == 0 {
			continue
		}
		if k == "Set-Cookie" || len(vv) == 1 {
			out[k] = slices.Clone(vv)
			continue
		}
		out[k] = []string{strings.Join(vv, ", ")}
	}
	return out
}

type sinkFactory func(w http.ResponseWriter, r *http.Request) (Sink, error)

var sinkKinds = map[string]sinkFactory{
	ServerStd: func(w http.ResponseWriter, r *http.Request) (Sink, error) {
		return NewStdSink(w, r), nil
	},
	ServerBuffered: func(w http.ResponseWriter, r *http.Request) (Sink, error) {
		return NewBufferedSink(w, r), nil
	},
	ServerRaw: hijackRawSink,
}

func lookupSinkKind(kind string) (string, sinkFactory, bool) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = ServerStd
	}
	f, ok := sinkKinds[kind]
	return kind, f, ok
}
