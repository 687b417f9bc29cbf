package cookie

import (
	"net/http"
	"time"
)

// Priority is the non-standard Priority attribute understood by Chromium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Options are the attributes of a directive. Zero values are omitted.
type Options struct {
	Domain      string
	Expires     time.Time
	HttpOnly    bool
	MaxAge      int
	Path        string
	Priority    Priority
	Secure      bool
	Partitioned bool
	SameSite    http.SameSite
}

type Option func(*Options)

func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

func WithExpires(t time.Time) Option {
	return func(o *Options) {
		o.Expires = t
	}
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

// WithMaxAge sets Max-Age in seconds. Negative values expire the cookie.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

func WithPriority(p Priority) Option {
	return func(o *Options) {
		o.Priority = p
	}
}

func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

func WithPartitioned(partitioned bool) Option {
	return func(o *Options) {
		o.Partitioned = partitioned
	}
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

// Apply returns a copy of base with opts applied. base is not modified.
func Apply(base Options, opts ...Option) Options {
	result := base
	for _, opt := range opts {
		if opt != nil {
			opt(&result)
		}
	}
	return result
}
