package response

import (
	"fmt"
	"net/http"
	"strings"
)

// Location sets the Location header. "back" resolves to the request's
// Referer (or Referrer) header, falling back to "/". With
// Config.EncodeLocation the target is percent-encoded, keeping existing
// escapes intact.
func (res *Response) Location(target string) error {
	loc := res.resolveLocation(target)
	if res.cfg.EncodeLocation {
		loc = encodeURL(loc)
	}
	return res.Set("Location", loc)
}

func (res *Response) resolveLocation(target string) string {
	if target != "back" {
		return target
	}
	if res.req != nil {
		if ref := res.req.Header.Get("Referer"); ref != "" {
			return ref
		}
		if ref := res.req.Header.Get("Referrer"); ref != "" {
			return ref
		}
	}
	return "/"
}

// Redirect answers with 302 Found.
func (res *Response) Redirect(target string) error {
	return res.RedirectStatus(target, http.StatusFound)
}

// RedirectStatus sets Location and status code and ends the response with a
// short plain text body.
func (res *Response) RedirectStatus(target string, code int) error {
	if code < 100 || code > 999 {
		return fmt.Errorf("%w: status code %d", ErrInvalidArgument, code)
	}
	if err := res.Location(target); err != nil {
		return err
	}
	loc := res.GetFirst("Location")

	if err := res.Status(code); err != nil {
		return err
	}
	if err := res.TypeCharset("text/plain", res.cfg.Charset); err != nil {
		return err
	}
	body := http.StatusText(code) + ". Redirecting to " + loc + "."
	return res.finish([]byte(body))
}

const upperhex = "0123456789ABCDEF"

// encodeURL percent-encodes bytes outside the set encodeURI leaves alone.
// Valid %XX sequences pass through; a stray % is encoded.
func encodeURL(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteString(s[i : i+3])
			i += 2
			continue
		}
		if urlSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// urlSafe matches [\x21\x23-\x3B\x3D\x3F-\x5F\x61-\x7A\x7C\x7E].
func urlSafe(c byte) bool {
	switch {
	case c == 0x21, c >= 0x23 && c <= 0x3B, c == 0x3D, c >= 0x3F && c <= 0x5F,
		c >= 0x61 && c <= 0x7A, c == 0x7C, c == 0x7E:
		return true
	}
	return false
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
