package response

import (
	"fmt"
	"mime"
	"strings"

	"github.com/dmitrymomot/response/pkg/disposition"
	"github.com/dmitrymomot/response/pkg/mimetype"
)

// Type sets Content-Type with the configured charset. typ is either a MIME
// type ("text/plain") or something carrying an extension ("html", ".html",
// "index.html").
func (res *Response) Type(typ string) error {
	return res.TypeCharset(typ, res.cfg.Charset)
}

// ContentType is an alias of Type.
func (res *Response) ContentType(typ string) error {
	return res.Type(typ)
}

// TypeCharset is Type with an explicit charset. An empty charset adds no
// parameter.
func (res *Response) TypeCharset(typ, cs string) error {
	value, err := res.contentType(typ, cs)
	if err != nil {
		return err
	}
	return res.Set("Content-Type", value)
}

func (res *Response) contentType(typ, cs string) (string, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return "", fmt.Errorf("%w: empty content type", ErrInvalidArgument)
	}

	if !strings.Contains(typ, "/") {
		resolved, ok := res.mime.Lookup(typ)
		if !ok {
			return "", fmt.Errorf("%w: unknown type %q", ErrInvalidArgument, typ)
		}
		typ = resolved
	}

	mediaType, params, err := mime.ParseMediaType(typ)
	if err != nil {
		return "", fmt.Errorf("%w: content type %q: %v", ErrInvalidArgument, typ, err)
	}
	if _, ok := params["charset"]; ok || cs == "" {
		return typ, nil
	}
	if !isToken(cs) {
		return "", fmt.Errorf("%w: charset %q", ErrInvalidArgument, cs)
	}
	return mediaType + "; charset=" + strings.ToLower(cs), nil
}

// Attachment marks the response as a download. With a filename the
// Content-Type is derived from its extension as well.
func (res *Response) Attachment(filename string) error {
	if filename != "" {
		typ := res.typeFor(filename)
		cs := ""
		if isTextual(typ) {
			cs = res.cfg.Charset
		}
		if err := res.TypeCharset(typ, cs); err != nil {
			return err
		}
	}
	return res.Set("Content-Disposition", disposition.Attachment(filename))
}

// isTextual reports whether a charset parameter is meaningful for typ.
func isTextual(typ string) bool {
	switch {
	case strings.HasPrefix(typ, "text/"),
		strings.HasSuffix(typ, "+json"),
		strings.HasSuffix(typ, "+xml"):
		return true
	}
	switch typ {
	case "application/json", "application/javascript", "application/xml":
		return true
	}
	return false
}

// charsetOf extracts the charset parameter of the current Content-Type.
func (res *Response) charsetOf() string {
	ct := res.GetFirst("Content-Type")
	if ct == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// typeFor resolves an extension with the octet-stream fallback, logging the
// fallback.
func (res *Response) typeFor(name string) string {
	typ, ok := res.mime.Lookup(name)
	if !ok {
		res.log.Debug("unknown extension, using default type",
			"name", name, "type", mimetype.Default)
		return mimetype.Default
	}
	return typ
}
