// Package cookie serializes Set-Cookie directives.
//
// A directive is a single header value made of a name=value pair followed by
// attributes. Attributes are emitted in a fixed order (Domain, Expires,
// HttpOnly, Max-Age, Path, Priority, Secure, Partitioned, SameSite) and only
// when set; flag attributes are written as bare tokens.
//
// # Usage
//
//	import "github.com/dmitrymomot/response/pkg/cookie"
//
//	v, err := cookie.Serialize("session", "abc", cookie.Options{
//	    Path:     "/",
//	    HttpOnly: true,
//	    SameSite: http.SameSiteLaxMode,
//	})
//	// session=abc; HttpOnly; Path=/; SameSite=Lax
//
// Options can be composed from defaults with functional options:
//
//	opts := cookie.Apply(defaults, cookie.WithMaxAge(3600), cookie.WithSecure(true))
//
// # Signing
//
// Signer attaches an HMAC-SHA256 signature to a value. Multiple secrets are
// supported for key rotation: the first signs, all of them verify.
//
//	s, err := cookie.NewSigner([]string{os.Getenv("COOKIE_SECRET")})
//	signed := s.Sign("user-42")
//	value, err := s.Verify(signed)
//
// # Configuration
//
// Config is parsed from the environment with github.com/caarlos0/env and turned
// into default Options and an optional Signer.
//
// # Error Handling
//
// Invalid names, values and attributes are reported through ErrInvalidName,
// ErrInvalidAttribute and friends so callers can use errors.Is.
package cookie
