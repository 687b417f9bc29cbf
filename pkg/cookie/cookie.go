package cookie

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Serialize renders one Set-Cookie directive. The value is percent-encoded
// wherever it falls outside the characters left alone by encodeURIComponent.
func Serialize(name, value string, opts Options) (string, error) {
	if !isToken(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	var b strings.Builder
	b.Grow(len(name) + len(value) + 32)
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(encodeValue(value))

	if opts.Domain != "" {
		if !isAttributeValue(opts.Domain) {
			return "", fmt.Errorf("%w: domain %q", ErrInvalidAttribute, opts.Domain)
		}
		b.WriteString("; Domain=")
		b.WriteString(opts.Domain)
	}

	if !opts.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(opts.Expires.UTC().Format(http.TimeFormat))
	}

	if opts.HttpOnly {
		b.WriteString("; HttpOnly")
	}

	if opts.MaxAge != 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(opts.MaxAge))
	}

	if opts.Path != "" {
		if !isAttributeValue(opts.Path) {
			return "", fmt.Errorf("%w: path %q", ErrInvalidAttribute, opts.Path)
		}
		b.WriteString("; Path=")
		b.WriteString(opts.Path)
	}

	if opts.Priority != "" {
		switch Priority(strings.ToLower(string(opts.Priority))) {
		case PriorityLow:
			b.WriteString("; Priority=Low")
		case PriorityMedium:
			b.WriteString("; Priority=Medium")
		case PriorityHigh:
			b.WriteString("; Priority=High")
		default:
			return "", fmt.Errorf("%w: priority %q", ErrInvalidAttribute, opts.Priority)
		}
	}

	if opts.Secure {
		b.WriteString("; Secure")
	}

	if opts.Partitioned {
		b.WriteString("; Partitioned")
	}

	switch opts.SameSite {
	case 0, http.SameSiteDefaultMode:
	case http.SameSiteLaxMode:
		b.WriteString("; SameSite=Lax")
	case http.SameSiteStrictMode:
		b.WriteString("; SameSite=Strict")
	case http.SameSiteNoneMode:
		b.WriteString("; SameSite=None")
	default:
		return "", fmt.Errorf("%w: same-site mode %d", ErrInvalidAttribute, opts.SameSite)
	}

	return b.String(), nil
}

// isToken reports whether s is an RFC 7230 token.
func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte(`()<>@,;:\"/[]?={}`, c) >= 0 {
			return false
		}
	}
	return true
}

// Attribute values end at ';' and must stay on one header line.
func isAttributeValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == 0x7f || c == ';' {
			return false
		}
	}
	return true
}

func encodeValue(s string) string {
	const hex = "0123456789ABCDEF"
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
