package cookie

import "errors"

var (
	ErrInvalidName      = errors.New("cookie.invalid_name")
	ErrInvalidAttribute = errors.New("cookie.invalid_attribute")
	ErrNoSecret         = errors.New("cookie.no_secret")
	ErrSecretTooShort   = errors.New("cookie.secret_too_short")
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
	ErrInvalidFormat    = errors.New("cookie.invalid_format")
)
