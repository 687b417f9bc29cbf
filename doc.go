// Package response formats a single outgoing HTTP response.
//
// A Response sits on top of a Sink, the raw side of the exchange that stores
// header fields and the status and transmits them followed by the body. It
// adds HTTP semantics on top: header merging, cookie serialization, content
// type and disposition inference, body type dispatch with the matching
// Content-Length and Content-Type, status driven body suppression, and
// redirect, JSONP and file streaming helpers.
//
// Basic Usage:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		res, err := response.New(w, r)
//		if err != nil {
//			http.Error(w, err.Error(), http.StatusInternalServerError)
//			return
//		}
//		_ = res.Status(http.StatusCreated)
//		_ = res.JSON(map[string]string{"id": "42"})
//	}
//
// Sinks:
//
// Config.Server selects how bytes reach the client:
//
//   - "std" writes through the http.ResponseWriter (default)
//   - "buffered" holds the body in memory and commits it on End
//   - "raw" hijacks the connection and writes HTTP/1.1 itself, which is the
//     only way to transmit a custom reason phrase
//
// Custom sinks are used through NewWithSink.
//
// Configuration:
//
// Handlers serving many requests should build a Factory once:
//
//	var cfg response.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	factory, err := response.NewFactory(cfg,
//		response.WithLogger(log),
//		response.WithCookieDefaults(cookie.Options{Path: "/", HttpOnly: true}),
//	)
//
// Lifecycle:
//
// A Response is terminal once its body was ended. Further mutating calls
// return ErrFinalized; header changes after headers were flushed return
// ErrHeadersSent. A Response is not safe for concurrent use.
package response
