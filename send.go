package response

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/response/pkg/charset"
)

// Send writes body and ends the response. The body type selects the
// encoding:
//
//   - nil: empty body, status 204 when Config.NoContentOnNil is set
//   - string: text/html unless a Content-Type is set, encoded into its charset
//   - []byte: application/octet-stream unless a Content-Type is set
//   - json.RawMessage: sent verbatim, application/json unless a Content-Type is set
//   - templ.Component: rendered and sent as a string
//   - io.Reader: streamed with no Content-Length
//   - error, scalar fmt.Stringer: their text, without a type default
//   - anything else: JSON, always labelled application/json
//
// 204 and 304 drop the body and its entity headers, 205 forces an empty
// body, and HEAD requests get the headers only.
func (res *Response) Send(body any) error {
	if err := res.checkMutable("send"); err != nil {
		return err
	}

	switch v := body.(type) {
	case nil:
		if res.cfg.NoContentOnNil {
			res.sink.SetStatus(http.StatusNoContent, "")
		}
		return res.finish(nil)
	case string:
		return res.SendString(v)
	case []byte:
		return res.SendBytes(v)
	case json.RawMessage:
		return res.sendJSONBytes(v)
	case templ.Component:
		return res.Render(res.context(), v)
	case io.Reader:
		return res.Stream(res.context(), v)
	case error:
		return res.finish([]byte(v.Error()))
	case fmt.Stringer:
		if isScalar(v) {
			return res.finish([]byte(v.String()))
		}
	}
	return res.JSON(body)
}

// SendString sends s as text, text/html unless a Content-Type is set. The
// text is encoded into the charset named by Content-Type.
func (res *Response) SendString(s string) error {
	if !res.sink.HasHeader("Content-Type") {
		if err := res.TypeCharset("html", res.cfg.Charset); err != nil {
			return err
		}
	}
	b, err := charset.Encode(s, res.charsetOf())
	if err != nil {
		return errors.Join(ErrInvalidArgument, err)
	}
	return res.finish(b)
}

// SendBytes sends b, application/octet-stream unless a Content-Type is set.
func (res *Response) SendBytes(b []byte) error {
	if !res.sink.HasHeader("Content-Type") {
		if err := res.TypeCharset("bin", ""); err != nil {
			return err
		}
	}
	return res.finish(b)
}

// JSON sends body encoded as JSON. Content-Type is always application/json,
// replacing any type set earlier.
func (res *Response) JSON(body any) error {
	b, err := res.marshal(body)
	if err != nil {
		return err
	}
	if err := res.Set("Content-Type", "application/json"); err != nil {
		return err
	}
	return res.finish(b)
}

// sendJSONBytes sends pre-encoded JSON, application/json unless a
// Content-Type is set.
func (res *Response) sendJSONBytes(b []byte) error {
	if !res.sink.HasHeader("Content-Type") {
		if err := res.Set("Content-Type", "application/json"); err != nil {
			return err
		}
	}
	return res.finish(b)
}

func (res *Response) marshal(body any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(res.cfg.JSONEscapeHTML)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidArgument, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// pendingBody is implemented by sinks that hold written bytes back until End.
type pendingBody interface {
	Buffered() []byte
}

// finish sets Content-Length for body plus any bytes a sink still holds and
// ends the response.
func (res *Response) finish(body []byte) error {
	if err := res.checkOpen("send"); err != nil {
		return err
	}
	if !res.sink.HeadersSent() {
		n := len(body)
		if p, ok := res.sink.(pendingBody); ok {
			n += len(p.Buffered())
		}
		res.sink.SetHeader("Content-Length", []string{strconv.Itoa(n)})
	}
	return res.seal(body)
}

// seal applies the status and method body rules once and ends the response.
func (res *Response) seal(body []byte) error {
	if err := res.checkOpen("send"); err != nil {
		return err
	}

	if !res.sink.HeadersSent() {
		switch res.StatusCode() {
		case http.StatusNoContent, http.StatusNotModified:
			res.sink.RemoveHeader("Content-Type")
			res.sink.RemoveHeader("Content-Length")
			res.sink.RemoveHeader("Transfer-Encoding")
			body = nil
		case http.StatusResetContent:
			res.sink.SetHeader("Content-Length", []string{"0"})
			res.sink.RemoveHeader("Transfer-Encoding")
			body = nil
		}
	}
	if res.isHead() {
		body = nil
	}

	return res.sink.End(body)
}

func (res *Response) context() context.Context {
	if res.req != nil {
		return res.req.Context()
	}
	return context.Background()
}

// isScalar keeps composite values with a String method on the JSON path.
func isScalar(v any) bool {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Interface:
		return false
	}
	return true
}
