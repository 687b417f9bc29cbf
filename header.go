package response

import (
	"fmt"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/dmitrymomot/response/pkg/logger"
)

// Link is one entry of a Link header.
type Link struct {
	Rel string
	URL string
}

// Set replaces the values of a header field. At least one value is required.
func (res *Response) Set(name string, values ...string) error {
	if err := res.validateField(name, values); err != nil {
		return err
	}
	if err := res.checkMutable("set " + name); err != nil {
		return err
	}
	res.sink.SetHeader(name, values)
	return nil
}

// Header is an alias of Set.
func (res *Response) Header(name string, values ...string) error {
	return res.Set(name, values...)
}

// SetAll replaces every field present in h. Nothing is changed when any
// field is invalid.
func (res *Response) SetAll(h http.Header) error {
	for name, values := range h {
		if err := res.validateField(name, values); err != nil {
			return err
		}
	}
	if err := res.checkMutable("set"); err != nil {
		return err
	}
	for name, values := range h {
		res.sink.SetHeader(name, values)
	}
	return nil
}

// Append adds values after any existing ones.
func (res *Response) Append(name string, values ...string) error {
	if err := res.validateField(name, values); err != nil {
		return err
	}
	if err := res.checkMutable("append " + name); err != nil {
		return err
	}
	res.append(name, values...)
	return nil
}

// AppendAll appends every field of h.
func (res *Response) AppendAll(h http.Header) error {
	for name, values := range h {
		if err := res.validateField(name, values); err != nil {
			return err
		}
	}
	if err := res.checkMutable("append"); err != nil {
		return err
	}
	for name, values := range h {
		res.append(name, values...)
	}
	return nil
}

func (res *Response) append(name string, values ...string) {
	prev := res.sink.GetHeader(name)
	res.sink.SetHeader(name, append(prev, values...))
}

// Remove deletes header fields. Absent fields are ignored.
func (res *Response) Remove(names ...string) error {
	for _, name := range names {
		if !validHeaderName(name) {
			return fmt.Errorf("%w: header name %q", ErrInvalidArgument, name)
		}
	}
	if err := res.checkMutable("remove"); err != nil {
		return err
	}
	for _, name := range names {
		res.sink.RemoveHeader(name)
	}
	return nil
}

// Get returns the values of a field, or nil when it is absent.
func (res *Response) Get(name string) []string {
	v := res.sink.GetHeader(name)
	if len(v) == 0 {
		return nil
	}
	return v
}

// GetFirst returns the first value of a field.
func (res *Response) GetFirst(name string) string {
	if v := res.sink.GetHeader(name); len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether a field is set.
func (res *Response) Has(name string) bool {
	return res.sink.HasHeader(name)
}

// Headers returns a copy of the header table.
func (res *Response) Headers() http.Header {
	return res.sink.Headers()
}

// Vary appends field names to the Vary header.
func (res *Response) Vary(fields ...string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no vary fields", ErrInvalidArgument)
	}
	for _, f := range fields {
		if f != "*" && !isToken(f) {
			return fmt.Errorf("%w: vary field %q", ErrInvalidArgument, f)
		}
	}
	return res.Append("Vary", fields...)
}

// Links adds entries to the Link header in the given order. They are
// joined into a single value, concatenated onto any existing one.
func (res *Response) Links(links ...Link) error {
	if len(links) == 0 {
		return fmt.Errorf("%w: no links", ErrInvalidArgument)
	}
	parts := make([]string, 0, len(links))
	for _, l := range links {
		if l.Rel == "" || l.URL == "" {
			return fmt.Errorf("%w: link %+v", ErrInvalidArgument, l)
		}
		if strings.ContainsAny(l.URL, "<>") || strings.Contains(l.Rel, `"`) {
			return fmt.Errorf("%w: link %+v", ErrInvalidArgument, l)
		}
		parts = append(parts, "<"+l.URL+`>; rel="`+l.Rel+`"`)
	}
	value := strings.Join(parts, ", ")
	if !validHeaderValue(value) {
		return fmt.Errorf("%w: link value", ErrInvalidArgument)
	}
	if err := res.checkMutable("links"); err != nil {
		return err
	}

	if prev := res.sink.GetHeader("Link"); len(prev) > 0 {
		value = strings.Join(prev, ", ") + ", " + value
	}
	res.sink.SetHeader("Link", []string{value})
	return nil
}

// SendHeader sets a header and ends the response with no body.
func (res *Response) SendHeader(name string, values ...string) error {
	if err := res.Set(name, values...); err != nil {
		return err
	}
	return res.finish(nil)
}

// validateField checks a field before any mutation. Rejections are logged
// at debug level with the offending field.
func (res *Response) validateField(name string, values []string) error {
	err := validateField(name, values)
	if err != nil {
		res.log.Debug("header rejected", logger.Header(name, values...), logger.Error(err))
	}
	return err
}

func validateField(name string, values []string) error {
	if !validHeaderName(name) {
		return fmt.Errorf("%w: header name %q", ErrInvalidArgument, name)
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: header %s has no value", ErrInvalidArgument, textproto.CanonicalMIMEHeaderKey(name))
	}
	for _, v := range values {
		if !validHeaderValue(v) {
			return fmt.Errorf("%w: header %s value %q", ErrInvalidArgument, textproto.CanonicalMIMEHeaderKey(name), v)
		}
	}
	return nil
}

func validHeaderName(name string) bool {
	return name != "" && isToken(name)
}

// validHeaderValue rejects the bytes that would split or truncate a field line.
func validHeaderValue(v string) bool {
	return !strings.ContainsAny(v, "\r\n\x00")
}

func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0
}
