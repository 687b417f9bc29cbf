package cookie_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/response/pkg/cookie"
)

func TestSerialize(t *testing.T) {
	t.Parallel()

	expires := time.Date(2030, time.January, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		key   string
		value string
		opts  cookie.Options
		want  string
	}{
		{"plain", "a", "10", cookie.Options{}, "a=10"},
		{"empty value", "b", "", cookie.Options{}, "b="},
		{"expiring", "b", "", cookie.Options{MaxAge: -1}, "b=; Max-Age=-1"},
		{"encoded value", "q", "hello world;x=1", cookie.Options{}, "q=hello%20world%3Bx%3D1"},
		{"utf-8 value", "u", "é", cookie.Options{}, "u=%C3%A9"},
		{
			name:  "attribute order",
			key:   "sid",
			value: "abc",
			opts: cookie.Options{
				SameSite:    http.SameSiteStrictMode,
				Partitioned: true,
				Secure:      true,
				Priority:    cookie.PriorityHigh,
				Path:        "/app",
				MaxAge:      3600,
				HttpOnly:    true,
				Expires:     expires,
				Domain:      "example.com",
			},
			want: "sid=abc; Domain=example.com; Expires=Wed, 02 Jan 2030 03:04:05 GMT; HttpOnly; Max-Age=3600; Path=/app; Priority=High; Secure; Partitioned; SameSite=Strict",
		},
		{"same site lax", "s", "1", cookie.Options{SameSite: http.SameSiteLaxMode}, "s=1; SameSite=Lax"},
		{"same site none", "s", "1", cookie.Options{SameSite: http.SameSiteNoneMode, Secure: true}, "s=1; Secure; SameSite=None"},
		{"same site default", "s", "1", cookie.Options{SameSite: http.SameSiteDefaultMode}, "s=1"},
		{"priority case insensitive", "p", "1", cookie.Options{Priority: "LOW"}, "p=1; Priority=Low"},
		{"non-utc expires", "e", "1", cookie.Options{Expires: expires.In(time.FixedZone("X", 3600))}, "e=1; Expires=Wed, 02 Jan 2030 03:04:05 GMT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := cookie.Serialize(tt.key, tt.value, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerialize_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		opts    cookie.Options
		wantErr error
	}{
		{"empty name", "", cookie.Options{}, cookie.ErrInvalidName},
		{"name with space", "a b", cookie.Options{}, cookie.ErrInvalidName},
		{"name with equals", "a=b", cookie.Options{}, cookie.ErrInvalidName},
		{"name with crlf", "a\r\nSet-Cookie: evil=1", cookie.Options{}, cookie.ErrInvalidName},
		{"domain with semicolon", "a", cookie.Options{Domain: "x.com; evil"}, cookie.ErrInvalidAttribute},
		{"path with newline", "a", cookie.Options{Path: "/\nX: y"}, cookie.ErrInvalidAttribute},
		{"unknown priority", "a", cookie.Options{Priority: "urgent"}, cookie.ErrInvalidAttribute},
		{"unknown same site", "a", cookie.Options{SameSite: http.SameSite(42)}, cookie.ErrInvalidAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.Serialize(tt.key, "v", tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Serialize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	base := cookie.Options{Path: "/", HttpOnly: true}
	got := cookie.Apply(base,
		cookie.WithPath("/api"),
		cookie.WithDomain("example.com"),
		cookie.WithMaxAge(60),
		cookie.WithSecure(true),
		cookie.WithHTTPOnly(false),
		cookie.WithPartitioned(true),
		cookie.WithPriority(cookie.PriorityMedium),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithExpires(time.Unix(0, 0)),
		nil,
	)

	assert.Equal(t, cookie.Options{
		Path:        "/api",
		Domain:      "example.com",
		MaxAge:      60,
		Secure:      true,
		HttpOnly:    false,
		Partitioned: true,
		Priority:    cookie.PriorityMedium,
		SameSite:    http.SameSiteLaxMode,
		Expires:     time.Unix(0, 0),
	}, got)
	assert.Equal(t, cookie.Options{Path: "/", HttpOnly: true}, base, "base must not change")
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.Config{
		Secrets:  " this-is-a-very-long-secret-key-32-chars-long , ,",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	assert.Equal(t, cookie.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}, cfg.Options())

	s, err := cfg.Signer()
	require.NoError(t, err)
	require.NotNil(t, s)

	s, err = cookie.DefaultConfig().Signer()
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = cookie.Config{Secrets: "short"}.Signer()
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
}
