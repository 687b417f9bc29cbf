// Package http1 writes HTTP/1.1 response heads and chunked bodies directly to a
// connection. It is used by sinks that own the wire instead of delegating to
// net/http.
package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

var ErrClosed = errors.New("http1: chunked writer closed")

// WriteHead writes the status line, header fields and the blank line.
// Field names are written in sorted order so output is reproducible; each
// value becomes its own field line.
func WriteHead(bw *bufio.Writer, status int, reason string, hdr http.Header) error {
	if reason == "" {
		reason = http.StatusText(status)
	}
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %03d %s\r\n", status, sanitize(reason)); err != nil {
		return err
	}

	keys := make([]string, 0, len(hdr))
	for k := range hdr {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		for _, v := range hdr[k] {
			if _, err := fmt.Fprintf(bw, "%s: %s\r\n", k, sanitize(v)); err != nil {
				return err
			}
		}
	}
	_, err := bw.WriteString("\r\n")
	return err
}

// BodyAllowed reports whether a response with this status may carry content.
func BodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

// ChunkedWriter frames writes using chunked transfer coding.
type ChunkedWriter struct {
	w      io.Writer
	closed bool
}

func NewChunkedWriter(w io.Writer) *ChunkedWriter {
	return &ChunkedWriter{w: w}
}

// Write emits p as one chunk. Empty writes are skipped because a zero-length
// chunk terminates the body.
func (c *ChunkedWriter) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := fmt.Fprintf(c.w, "%x\r\n", len(p)); err != nil {
		return 0, err
	}
	n, err := c.w.Write(p)
	if err != nil {
		return n, err
	}
	if _, err := io.WriteString(c.w, "\r\n"); err != nil {
		return n, err
	}
	return n, nil
}

// Close writes the last-chunk and an empty trailer section.
func (c *ChunkedWriter) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	_, err := io.WriteString(c.w, "0\r\n\r\n")
	return err
}

// Header values must not break the field line.
func sanitize(v string) string {
	if !strings.ContainsAny(v, "\r\n") {
		return v
	}
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
