package response

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/response/pkg/cookie"
)

// Cookie appends a Set-Cookie directive built from the configured default
// attributes and opts.
func (res *Response) Cookie(name, value string, opts ...cookie.Option) error {
	directive, err := cookie.Serialize(name, value, cookie.Apply(res.cookies, opts...))
	if err != nil {
		return errors.Join(ErrInvalidArgument, err)
	}
	return res.Append("Set-Cookie", directive)
}

// ClearCookie appends a directive expiring name immediately. Earlier
// directives for the same name are kept.
func (res *Response) ClearCookie(name string, opts ...cookie.Option) error {
	return res.Cookie(name, "", append(opts, cookie.WithMaxAge(-1))...)
}

// SignedCookie is Cookie with the value signed by the configured signer.
func (res *Response) SignedCookie(name, value string, opts ...cookie.Option) error {
	if res.signer == nil {
		return fmt.Errorf("%w: no cookie signer configured", ErrInvalidArgument)
	}
	return res.Cookie(name, res.signer.Sign(value), opts...)
}
