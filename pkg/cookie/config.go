package cookie

import (
	"net/http"
	"strings"
)

// Config holds the default attributes applied to every directive.
type Config struct {
	Secrets     string        `env:"COOKIE_SECRETS" envDefault:""`
	Path        string        `env:"COOKIE_PATH" envDefault:""`
	Domain      string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge      int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure      bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly    bool          `env:"COOKIE_HTTP_ONLY" envDefault:"false"`
	Partitioned bool          `env:"COOKIE_PARTITIONED" envDefault:"false"`
	SameSite    http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"0"` // 2 = Lax, 3 = Strict, 4 = None
}

// DefaultConfig returns a config that adds no attributes.
func DefaultConfig() Config {
	return Config{}
}

// Options converts the config into default directive options.
func (c Config) Options() Options {
	return Options{
		Path:        c.Path,
		Domain:      c.Domain,
		MaxAge:      c.MaxAge,
		Secure:      c.Secure,
		HttpOnly:    c.HttpOnly,
		Partitioned: c.Partitioned,
		SameSite:    c.SameSite,
	}
}

// Signer builds a Signer from the comma separated secrets. It returns nil,
// nil when no secrets are configured.
func (c Config) Signer() (*Signer, error) {
	secrets := c.parseSecrets()
	if len(secrets) == 0 {
		return nil, nil
	}
	return NewSigner(secrets)
}

func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
