package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/response"
)

func TestSendString(t *testing.T) {
	t.Parallel()

	t.Run("defaults to html", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Send("hello"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "5", rec.Header().Get("Content-Length"))
		assert.Equal(t, "hello", rec.Body.String())
	})

	t.Run("keeps an explicit type", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Type("txt"))
		require.NoError(t, res.Send("hi"))
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("content length counts bytes", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.SendString("héllo"))
		assert.Equal(t, "6", rec.Header().Get("Content-Length"))
	})

	t.Run("encodes into the configured charset", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet, response.WithCharset("iso-8859-1"))
		require.NoError(t, res.Send("café"))
		assert.Equal(t, "text/html; charset=iso-8859-1", rec.Header().Get("Content-Type"))
		assert.Equal(t, "4", rec.Header().Get("Content-Length"))
		assert.Equal(t, []byte("caf\xe9"), rec.Body.Bytes())
	})

	t.Run("encodes into the charset of an explicit type", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Set("Content-Type", "text/plain; charset=windows-1252"))
		require.NoError(t, res.Send("€"))
		assert.Equal(t, []byte{0x80}, rec.Body.Bytes())
	})

	t.Run("unencodable text", func(t *testing.T) {
		t.Parallel()
		res, _ := newResponse(t, http.MethodGet, response.WithCharset("iso-8859-1"))
		assert.ErrorIs(t, res.Send("日本"), response.ErrInvalidArgument)
		assert.False(t, res.Finished())
	})

	t.Run("no charset", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet, response.WithCharset(""))
		require.NoError(t, res.Send("x"))
		assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	})
}

type version struct{ major, minor int }

func (v version) String() string { return "v" + string(rune('0'+v.major)) + "." + string(rune('0'+v.minor)) }

type level int

func (l level) String() string { return "level-" + string(rune('0'+int(l))) }

func TestSendDispatch(t *testing.T) {
	t.Parallel()

	t.Run("bytes default to octet-stream", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Send([]byte{1, 2, 3}))
		assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
		assert.Equal(t, "3", rec.Header().Get("Content-Length"))
		assert.Equal(t, []byte{1, 2, 3}, rec.Body.Bytes())
	})

	t.Run("structured values are json", func(t *testing.T) {
		t.Parallel()
		for _, body := range []any{map[string]int{"a": 1}, []int{1, 2}, true, 3.5, struct{ A int }{1}, version{1, 2}} {
			res, rec := newResponse(t, http.MethodGet)
			require.NoError(t, res.Send(body))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			want, err := json.Marshal(body)
			require.NoError(t, err)
			assert.Equal(t, string(want), rec.Body.String())
		}
	})

	t.Run("raw json", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Send(json.RawMessage(`{"raw":true}`)))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, `{"raw":true}`, rec.Body.String())

		res, rec = newResponse(t, http.MethodGet)
		require.NoError(t, res.Set("Content-Type", "application/problem+json"))
		require.NoError(t, res.Send(json.RawMessage(`{"title":"x"}`)))
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	})

	t.Run("error and scalar stringer", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Send(errors.New("boom")))
		assert.Equal(t, "boom", rec.Body.String())
		assert.Empty(t, rec.Header().Get("Content-Type"))
		assert.Equal(t, "4", rec.Header().Get("Content-Length"))

		res, rec = newResponse(t, http.MethodGet)
		require.NoError(t, res.Send(level(3)))
		assert.Equal(t, "level-3", rec.Body.String())
	})

	t.Run("reader streams", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Send(io.NopCloser(strings.NewReader("streamed"))))
		assert.Equal(t, "streamed", rec.Body.String())
		assert.Empty(t, rec.Header().Get("Content-Length"))
	})

	t.Run("templ component", func(t *testing.T) {
		t.Parallel()
		c := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<p>hi</p>")
			return err
		})
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Send(c))
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hi</p>", rec.Body.String())
	})

	t.Run("failing templ component", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		c := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })
		res, _ := newResponse(t, http.MethodGet)
		assert.ErrorIs(t, res.Render(context.Background(), c), boom)
		assert.False(t, res.Finished())
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		t.Parallel()
		res, _ := newResponse(t, http.MethodGet)
		assert.ErrorIs(t, res.Send(make(chan int)), response.ErrInvalidArgument)
		assert.False(t, res.Finished())
	})
}

func TestSendNil(t *testing.T) {
	t.Parallel()

	t.Run("no content by default", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Set("Content-Type", "text/plain"))
		require.NoError(t, res.Send(nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, rec.Header().Get("Content-Type"))
		assert.Empty(t, rec.Header().Get("Content-Length"))
	})

	t.Run("empty 200 when disabled", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet, response.WithNoContentOnNil(false))
		require.NoError(t, res.Send(nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("Content-Length"))
	})
}

func TestStatusBodyRules(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusNoContent, http.StatusNotModified} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()
			res, rec := newResponse(t, http.MethodGet)
			require.NoError(t, res.Set("Transfer-Encoding", "chunked"))
			require.NoError(t, res.Status(code))
			require.NoError(t, res.Send("ignored"))
			assert.Equal(t, code, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Empty(t, rec.Header().Get("Content-Type"))
			assert.Empty(t, rec.Header().Get("Content-Length"))
			assert.Empty(t, rec.Header().Get("Transfer-Encoding"))
		})
	}

	t.Run("reset content", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Status(http.StatusResetContent))
		require.NoError(t, res.Send("ignored"))
		assert.Equal(t, http.StatusResetContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "0", rec.Header().Get("Content-Length"))
	})

	t.Run("head keeps headers", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, "head")
		require.NoError(t, res.Send("hello"))
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "5", rec.Header().Get("Content-Length"))
		assert.Empty(t, rec.Body.String())
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("content type and body", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSON(map[string]any{"user": "tobi"}))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, `{"user":"tobi"}`, rec.Body.String())
		assert.Equal(t, "15", rec.Header().Get("Content-Length"))
	})

	t.Run("replaces an earlier content type", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Type("html"))
		require.NoError(t, res.JSON(map[string]int{"a": 10}))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, `{"a":10}`, rec.Body.String())
	})

	t.Run("replaces a middleware content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rec.Header().Set("Content-Type", "text/plain")
		res, err := response.New(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.NoError(t, res.Send([]int{1}))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("html escaping is opt-in", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSON("<b>&</b>"))
		assert.Equal(t, `"<b>&</b>"`, rec.Body.String())

		res, rec = newResponse(t, http.MethodGet, response.WithJSONEscapeHTML(true))
		require.NoError(t, res.JSON("<b>"))
		assert.Equal(t, `"\u003cb\u003e"`, rec.Body.String())
	})

	t.Run("nil is null", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSON(nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", rec.Body.String())
	})

	t.Run("time values", func(t *testing.T) {
		t.Parallel()
		ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.Send(ts))
		assert.Equal(t, `"2026-01-02T03:04:05Z"`, rec.Body.String())
	})
}

func TestJSONP(t *testing.T) {
	t.Parallel()

	t.Run("wraps in callback", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSONPCallback(map[string]int{"count": 1}, "cb"))
		assert.Equal(t, "text/javascript", rec.Header().Get("Content-Type"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, `/**/ typeof cb === 'function' && cb({"count":1});`, rec.Body.String())
	})

	t.Run("configured callback", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet, response.WithJSONPCallback("handle"))
		require.NoError(t, res.JSONP([]int{1}))
		assert.Equal(t, `/**/ typeof handle === 'function' && handle([1]);`, rec.Body.String())
	})

	t.Run("sanitizes callback", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSONPCallback(1, "app.cbs[0]<script>"))
		assert.Equal(t, `/**/ typeof app.cbs[0]script === 'function' && app.cbs[0]script(1);`, rec.Body.String())
	})

	t.Run("empty callback sends json", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSONPCallback(map[string]int{"a": 1}, "()"))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, `{"a":1}`, rec.Body.String())
	})

	t.Run("nil body", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSONPCallback(nil, "cb"))
		assert.Equal(t, `/**/ typeof cb === 'function' && cb("");`, rec.Body.String())
	})

	t.Run("line separators escaped", func(t *testing.T) {
		t.Parallel()
		res, rec := newResponse(t, http.MethodGet)
		require.NoError(t, res.JSONPCallback("a\u2028b\u2029c", "cb"))
		assert.Equal(t, `/**/ typeof cb === 'function' && cb("a\u2028b\u2029c");`, rec.Body.String())
	})
}
