package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/response"
	"github.com/dmitrymomot/response/pkg/cookie"
	"github.com/dmitrymomot/response/pkg/httpserver"
	"github.com/dmitrymomot/response/pkg/logger"
	"github.com/dmitrymomot/response/pkg/requestid"
)

type app struct {
	log      *slog.Logger
	std      *response.Factory
	buffered *response.Factory
	raw      *response.Factory
}

func newApp(cfg response.Config, log *slog.Logger, opts ...response.Option) (*app, error) {
	std, err := response.NewFactory(cfg, opts...)
	if err != nil {
		return nil, err
	}
	buffered, err := response.NewFactory(cfg, append(opts, response.WithServer(response.ServerBuffered))...)
	if err != nil {
		return nil, err
	}
	raw, err := response.NewFactory(cfg, append(opts, response.WithServer(response.ServerRaw))...)
	if err != nil {
		return nil, err
	}
	return &app{log: log, std: std, buffered: buffered, raw: raw}, nil
}

type handlerFunc func(res *response.Response, r *http.Request) error

// handle adapts fn to net/http. Errors before headers were sent become a
// JSON error body.
func (a *app) handle(f *response.Factory, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := f.New(w, r)
		if err != nil {
			a.log.ErrorContext(r.Context(), "create response", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if err := fn(res, r); err != nil {
			a.fail(res, r, err)
		}
	}
}

func (a *app) fail(res *response.Response, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, response.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, response.ErrInvalidArgument):
		code = http.StatusBadRequest
	}
	a.log.WarnContext(r.Context(), "handler failed", logger.Status(code), logger.Error(err))

	if res.HeadersSent() || res.Finished() {
		return
	}
	_ = res.Status(code)
	_ = res.JSON(map[string]string{"error": http.StatusText(code)})
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(httpserver.AccessLog(a.log))

	r.Get("/health", httpserver.HealthHandler(a.log))

	r.Get("/", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		return res.Send("<h1>response demo</h1>")
	}))
	r.Get("/json", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		return res.JSON(map[string]any{"ok": true, "request_id": requestid.FromContext(r.Context())})
	}))
	r.Get("/jsonp", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		cb := r.URL.Query().Get("callback")
		return res.JSONPCallback(map[string]int{"count": 3}, cb)
	}))
	r.Get("/text", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		if err := res.Type("txt"); err != nil {
			return err
		}
		return res.Send("plain text")
	}))
	r.Get("/nothing", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		return res.Send(nil)
	}))
	r.Get("/page", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		return res.Render(r.Context(), page(r.URL.Query().Get("name")))
	}))
	r.Get("/cookies", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		if err := res.Cookie("visit", strconv.FormatInt(time.Now().Unix(), 10),
			cookie.WithMaxAge(3600), cookie.WithSameSite(http.SameSiteLaxMode)); err != nil {
			return err
		}
		if err := res.ClearCookie("legacy"); err != nil {
			return err
		}
		if err := res.SignedCookie("session", "user-42"); err != nil && !errors.Is(err, response.ErrInvalidArgument) {
			return err
		}
		return res.SendStatus(http.StatusNoContent)
	}))
	r.Get("/links", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		if err := res.Links(
			response.Link{Rel: "next", URL: "/links?page=2"},
			response.Link{Rel: "last", URL: "/links?page=9"},
		); err != nil {
			return err
		}
		if err := res.Vary("Accept", "Accept-Encoding"); err != nil {
			return err
		}
		return res.Send([]byte("linked"))
	}))
	r.Get("/redirect", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		to := r.URL.Query().Get("to")
		if to == "" {
			to = "back"
		}
		return res.Redirect(to)
	}))
	r.Get("/status/{code}", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		code, err := strconv.Atoi(chi.URLParam(r, "code"))
		if err != nil {
			return fmt.Errorf("%w: %v", response.ErrInvalidArgument, err)
		}
		return res.SendStatus(code)
	}))
	r.Get("/files/*", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		return res.SendFile(r.Context(), chi.URLParam(r, "*"))
	}))
	r.Get("/download/*", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		return res.Download(r.Context(), chi.URLParam(r, "*"), r.URL.Query().Get("as"))
	}))
	r.Get("/stream", a.handle(a.std, func(res *response.Response, r *http.Request) error {
		if err := res.Type("txt"); err != nil {
			return err
		}
		body := ticker(r.Context(), 5)
		defer func() { _ = body.Close() }()
		return res.Stream(r.Context(), body)
	}))
	r.Get("/buffered", a.handle(a.buffered, func(res *response.Response, r *http.Request) error {
		if _, err := res.Write([]byte("assembled ")); err != nil {
			return err
		}
		// still mutable: the buffered sink has not sent anything yet
		if err := res.Set("X-Assembled", "true"); err != nil {
			return err
		}
		return res.End([]byte("in memory"))
	}))
	r.Get("/raw", a.handle(a.raw, func(res *response.Response, r *http.Request) error {
		if err := res.Status(299, "Custom Reason"); err != nil {
			return err
		}
		return res.Send("written by the raw sink")
	}))

	return r
}

func page(name string) templ.Component {
	if name == "" {
		name = "stranger"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<!doctype html><p>Hello, "+templ.EscapeString(name)+"</p>")
		return err
	})
}

// ticker produces n lines, one every 200ms.
func ticker(ctx context.Context, n int) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		t := time.NewTicker(200 * time.Millisecond)
		defer t.Stop()
		for i := range n {
			select {
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			case <-t.C:
				if _, err := fmt.Fprintf(pw, "tick %d\n", i+1); err != nil {
					return
				}
			}
		}
		_ = pw.Close()
	}()
	return pr
}
