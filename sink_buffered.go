package response

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/response/internal/http1"
)

// BufferedSink collects the body in memory and commits everything on End,
// filling in Content-Length when it was not set. Headers stay mutable until
// then. FlushHeaders switches it to pass-through.
//
// A Send after Write appends to the held bytes; the Content-Length it sets
// covers both.
type BufferedSink struct {
	*StdSink
	buf         bytes.Buffer
	passthrough bool
}

// NewBufferedSink wraps w. r may be nil.
func NewBufferedSink(w http.ResponseWriter, r *http.Request) *BufferedSink {
	return &BufferedSink{StdSink: NewStdSink(w, r)}
}

func (s *BufferedSink) Write(p []byte) (int, error) {
	if s.ended {
		return 0, ErrFinalized
	}
	if s.passthrough {
		return s.StdSink.Write(p)
	}
	return s.buf.Write(p)
}

func (s *BufferedSink) End(p []byte) error {
	if s.ended {
		return ErrFinalized
	}
	if s.passthrough {
		return s.StdSink.End(p)
	}

	s.buf.Write(p)
	// Bytes held for a bodiless status never reach the wire.
	if !http1.BodyAllowed(s.code) || s.code == http.StatusResetContent {
		s.buf.Reset()
	}
	head := s.r != nil && strings.EqualFold(s.r.Method, http.MethodHead)
	if !s.HasHeader("Content-Length") && !s.HasHeader("Transfer-Encoding") &&
		http1.BodyAllowed(s.code) && (!head || s.buf.Len() > 0) {
		s.SetHeader("Content-Length", []string{strconv.Itoa(s.buf.Len())})
	}
	// HEAD keeps the length of the body it would have sent.
	if head {
		s.buf.Reset()
	}
	return s.StdSink.End(s.buf.Bytes())
}

func (s *BufferedSink) FlushHeaders() error {
	if s.ended {
		return ErrFinalized
	}
	if !s.passthrough {
		s.passthrough = true
		if s.buf.Len() > 0 {
			if _, err := s.StdSink.Write(s.buf.Bytes()); err != nil {
				return err
			}
			s.buf.Reset()
		}
	}
	return s.StdSink.FlushHeaders()
}

// Buffered returns the bytes held back so far.
func (s *BufferedSink) Buffered() []byte {
	return s.buf.Bytes()
}
