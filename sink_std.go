package response

import (
	"net/http"
	"sync"
	"time"
)

// StdSink adapts an http.ResponseWriter. The header table starts from the
// writer's current header map, so fields set by middleware are preserved.
//
// net/http always writes the standard reason phrase; a custom status message
// is stored but not transmitted.
type StdSink struct {
	headerState
	w       http.ResponseWriter
	r       *http.Request
	rc      *http.ResponseController
	done    chan struct{}
	doneMu  sync.Once
	aborted bool
}

// NewStdSink wraps w. r may be nil.
func NewStdSink(w http.ResponseWriter, r *http.Request) *StdSink {
	return &StdSink{
		headerState: newHeaderState(w.Header()),
		w:           w,
		r:           r,
		rc:          http.NewResponseController(w),
		done:        make(chan struct{}),
	}
}

func (s *StdSink) commit() {
	if s.sent {
		return
	}
	s.sent = true

	dst := s.w.Header()
	for k := range dst {
		delete(dst, k)
	}
	for k, vv := range wireHeader(s.header) {
		dst[k] = vv
	}
	s.w.WriteHeader(s.code)
}

func (s *StdSink) Write(p []byte) (int, error) {
	if s.ended {
		return 0, ErrFinalized
	}
	s.commit()
	n, err := s.w.Write(p)
	if err != nil {
		s.finish()
	}
	return n, err
}

func (s *StdSink) End(p []byte) error {
	if s.ended {
		return ErrFinalized
	}
	s.commit()
	s.ended = true
	defer s.finish()
	if len(p) == 0 {
		return nil
	}
	_, err := s.w.Write(p)
	return err
}

func (s *StdSink) FlushHeaders() error {
	if s.ended {
		return ErrFinalized
	}
	s.commit()
	if err := s.rc.Flush(); err != nil && err != http.ErrNotSupported {
		return err
	}
	return nil
}

// Done follows the request context when there is one.
func (s *StdSink) Done() <-chan struct{} {
	if s.r != nil {
		return s.r.Context().Done()
	}
	return s.done
}

// Abort expires the write deadline so net/http drops the connection instead
// of finishing a truncated body as if it were complete.
func (s *StdSink) Abort(error) {
	if s.aborted {
		return
	}
	s.aborted = true
	s.ended = true
	_ = s.rc.SetWriteDeadline(time.Now())
	s.finish()
}

func (s *StdSink) finish() {
	s.doneMu.Do(func() { close(s.done) })
}
