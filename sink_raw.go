package response

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/response/internal/http1"
)

// RawSink writes an HTTP/1.1 response straight to a connection. Unlike the
// net/http based sinks it transmits custom reason phrases. Bodies of unknown
// length use chunked transfer coding; the connection is closed after End.
type RawSink struct {
	headerState
	bw      *bufio.Writer
	conn    io.Writer
	body    io.Writer
	chunked *http1.ChunkedWriter
	head    bool
	now     func() time.Time

	done     chan struct{}
	doneOnce sync.Once
}

// NewRawSink writes to conn. When conn is an io.Closer it is closed once the
// response ends or is aborted. method is the request method, used to
// suppress bodies for HEAD.
func NewRawSink(conn io.Writer, method string) *RawSink {
	return newRawSink(conn, bufio.NewWriter(conn), method, nil)
}

func newRawSink(conn io.Writer, bw *bufio.Writer, method string, initial http.Header) *RawSink {
	return &RawSink{
		headerState: newHeaderState(initial),
		bw:          bw,
		conn:        conn,
		head:        strings.EqualFold(method, http.MethodHead),
		now:         time.Now,
		done:        make(chan struct{}),
	}
}

// hijackRawSink takes the connection over from net/http, keeping header
// fields already set on w. Wrapped writers are unwrapped through
// http.ResponseController.
func hijackRawSink(w http.ResponseWriter, r *http.Request) (Sink, error) {
	initial := w.Header().Clone()
	conn, rw, err := http.NewResponseController(w).Hijack()
	if err != nil {
		if errors.Is(err, http.ErrNotSupported) {
			return nil, fmt.Errorf("%w: %T does not support hijacking", ErrUnsupportedConfiguration, w)
		}
		return nil, fmt.Errorf("%w: hijack: %v", ErrUnsupportedConfiguration, err)
	}
	method := ""
	if r != nil {
		method = r.Method
	}
	return newRawSink(conn, rw.Writer, method, initial), nil
}

// commit writes the head. length is the final body size when known, or -1.
func (s *RawSink) commit(length int) error {
	if s.sent {
		return nil
	}
	s.sent = true

	hdr := wireHeader(s.header)
	hdr.Set("Connection", "close")
	if hdr.Get("Date") == "" {
		hdr.Set("Date", s.now().UTC().Format(http.TimeFormat))
	}

	switch {
	case !http1.BodyAllowed(s.code):
		s.body = io.Discard
	case hdr.Get("Content-Length") != "":
		s.body = s.bw
	case length >= 0:
		if length > 0 || !s.head {
			hdr.Set("Content-Length", strconv.Itoa(length))
		}
		s.body = s.bw
	default:
		hdr.Set("Transfer-Encoding", "chunked")
		hdr.Del("Content-Length")
		s.chunked = http1.NewChunkedWriter(s.bw)
		s.body = s.chunked
	}
	if s.head {
		s.body = io.Discard
		s.chunked = nil
	}

	return http1.WriteHead(s.bw, s.code, s.message, hdr)
}

func (s *RawSink) Write(p []byte) (int, error) {
	if s.ended {
		return 0, ErrFinalized
	}
	if err := s.commit(-1); err != nil {
		s.finish()
		return 0, err
	}
	n, err := s.body.Write(p)
	if err != nil {
		s.finish()
	}
	return n, err
}

func (s *RawSink) End(p []byte) error {
	if s.ended {
		return ErrFinalized
	}
	s.ended = true
	defer s.close()

	if err := s.commit(len(p)); err != nil {
		return err
	}
	if len(p) > 0 {
		if _, err := s.body.Write(p); err != nil {
			return err
		}
	}
	if s.chunked != nil {
		if err := s.chunked.Close(); err != nil {
			return err
		}
	}
	return s.bw.Flush()
}

func (s *RawSink) FlushHeaders() error {
	if s.ended {
		return ErrFinalized
	}
	if err := s.commit(-1); err != nil {
		return err
	}
	return s.bw.Flush()
}

func (s *RawSink) Done() <-chan struct{} {
	return s.done
}

// Abort drops the connection without the terminating chunk, so the peer sees
// a truncated message rather than a complete one.
func (s *RawSink) Abort(error) {
	if s.ended {
		return
	}
	s.ended = true
	_ = s.bw.Flush()
	s.close()
}

func (s *RawSink) close() {
	s.finish()
	if c, ok := s.conn.(io.Closer); ok {
		_ = c.Close()
	}
}

func (s *RawSink) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}
