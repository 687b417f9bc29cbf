package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"
)

const minSecretLength = 32

// Signer signs and verifies cookie values with HMAC-SHA256.
type Signer struct {
	secrets []string
}

func NewSigner(secrets []string) (*Signer, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	return &Signer{secrets: secrets}, nil
}

// Sign returns base64url(value) "." base64url(mac). Both halves survive
// cookie value encoding untouched.
func (s *Signer) Sign(value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + s.mac(s.secrets[0], []byte(value))
}

func (s *Signer) Verify(signed string) (string, error) {
	encodedValue, signature, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encodedValue)
	if err != nil {
		return "", ErrInvalidFormat
	}

	// Old secrets stay valid during rotation.
	for _, secret := range s.secrets {
		if subtle.ConstantTimeCompare([]byte(signature), []byte(s.mac(secret, value))) == 1 {
			return string(value), nil
		}
	}

	return "", ErrInvalidSignature
}

func (s *Signer) mac(secret string, value []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(value)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
