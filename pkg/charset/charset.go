// Package charset encodes response text into the charset advertised in the
// Content-Type header. UTF-8 (and its aliases) is a pass-through; any other
// WHATWG encoding label is resolved through golang.org/x/text.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const UTF8 = "utf-8"

var (
	ErrUnknownCharset = errors.New("charset.unknown")
	ErrUnencodable    = errors.New("charset.unencodable")
)

// IsUTF8 reports whether label names UTF-8. An empty label counts as UTF-8.
func IsUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}

// Lookup resolves label to an encoding.
func Lookup(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	return enc, nil
}

// Validate checks that label is a known charset.
func Validate(label string) error {
	if IsUTF8(label) {
		return nil
	}
	_, err := Lookup(label)
	return err
}

// Encode converts s from UTF-8 into the charset named by label.
func Encode(s, label string) ([]byte, error) {
	if IsUTF8(label) {
		return []byte(s), nil
	}
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnencodable, err)
	}
	return out, nil
}
