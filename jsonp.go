package response

import (
	"bytes"
	"regexp"
)

var callbackDisallowed = regexp.MustCompile(`[^\[\]\w$.]`)

// JSONP sends body wrapped in a call to the configured callback name.
func (res *Response) JSONP(body any) error {
	return res.JSONPCallback(body, res.cfg.JSONPCallback)
}

// JSONPCallback sends body as a JavaScript call to callback. Characters
// outside [\[\]\w$.] are removed from the name; if nothing remains, plain
// JSON is sent.
func (res *Response) JSONPCallback(body any, callback string) error {
	if err := res.checkMutable("jsonp"); err != nil {
		return err
	}
	if body == nil {
		body = ""
	}
	payload, err := res.marshal(body)
	if err != nil {
		return err
	}

	if !res.sink.HasHeader("Content-Type") {
		res.sink.SetHeader("X-Content-Type-Options", []string{"nosniff"})
		res.sink.SetHeader("Content-Type", []string{"application/json"})
	}

	callback = callbackDisallowed.ReplaceAllString(callback, "")
	if callback != "" {
		res.sink.SetHeader("X-Content-Type-Options", []string{"nosniff"})
		res.sink.SetHeader("Content-Type", []string{"text/javascript"})

		payload = bytes.ReplaceAll(payload, []byte("\u2028"), []byte(`\u2028`))
		payload = bytes.ReplaceAll(payload, []byte("\u2029"), []byte(`\u2029`))

		var buf bytes.Buffer
		buf.Grow(len(payload) + 2*len(callback) + 40)
		buf.WriteString("/**/ typeof ")
		buf.WriteString(callback)
		buf.WriteString(" === 'function' && ")
		buf.WriteString(callback)
		buf.WriteByte('(')
		buf.Write(payload)
		buf.WriteString(");")
		payload = buf.Bytes()
	}

	return res.finish(payload)
}
