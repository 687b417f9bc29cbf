package logger

import (
	"log/slog"
	"net/textproto"
	"strings"
)

// Error records err under the key "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Sink records the response sink kind under the key "sink".
func Sink(kind string) slog.Attr {
	return slog.String("sink", kind)
}

// Status records an HTTP status code under the key "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Method records an HTTP method under the key "method".
func Method(method string) slog.Attr {
	return slog.String("method", strings.ToUpper(method))
}

// Path records a request or file path under the key "path". An empty path
// yields an empty Attr.
func Path(p string) slog.Attr {
	if p == "" {
		return slog.Attr{}
	}
	return slog.String("path", p)
}

// Header records a header field under "header.<Canonical-Name>". Values are
// joined with ", ".
func Header(name string, values ...string) slog.Attr {
	return slog.String("header."+textproto.CanonicalMIMEHeaderKey(name), strings.Join(values, ", "))
}

// Bytes records a byte count under the key "bytes".
func Bytes(n int64) slog.Attr {
	return slog.Int64("bytes", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
