// Package disposition formats Content-Disposition header values.
//
// Filenames are reduced to their base name and always emitted as a quoted
// string. Names outside printable ASCII additionally get an RFC 8187
// filename* parameter so user agents can recover the original name, while the
// quoted fallback has the offending characters replaced by '?'.
//
//	disposition.Attachment("reports/Q1.pdf") // attachment; filename="Q1.pdf"
//	disposition.Attachment("€ rates.txt")    // attachment; filename="? rates.txt"; filename*=UTF-8''%E2%82%AC%20rates.txt
package disposition

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	TypeAttachment = "attachment"
	TypeInline     = "inline"
)

var ErrInvalidType = errors.New("disposition.invalid_type")

// Attachment formats an attachment disposition. An empty filename yields the
// bare "attachment" value.
func Attachment(filename string) string {
	v, _ := Format(TypeAttachment, filename)
	return v
}

// Inline formats an inline disposition.
func Inline(filename string) string {
	v, _ := Format(TypeInline, filename)
	return v
}

// Format builds a disposition value of the given type. The type must be a
// non-empty token.
func Format(dispositionType, filename string) (string, error) {
	dispositionType = strings.ToLower(strings.TrimSpace(dispositionType))
	if dispositionType == "" || !isToken(dispositionType) {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, dispositionType)
	}

	name := Basename(filename)
	if name == "" {
		return dispositionType, nil
	}

	var b strings.Builder
	b.WriteString(dispositionType)
	b.WriteString(`; filename="`)
	b.WriteString(quote(asciiFallback(name)))
	b.WriteByte('"')
	if !isPrintableASCII(name) {
		b.WriteString("; filename*=UTF-8''")
		b.WriteString(encodeExtValue(name))
	}
	return b.String(), nil
}

// Basename strips directory components using both slash styles.
func Basename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = strings.ReplaceAll(filename, "\x00", "")
	if strings.TrimSpace(filename) == "" {
		return ""
	}
	base := path.Base(filename)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}

func quote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func asciiFallback(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] >= 0x7f {
			return false
		}
	}
	return true
}

// attr-char from RFC 8187.
func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func encodeExtValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isToken(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte(`()<>@,;:\"/[]?={}`, c) >= 0 {
			return false
		}
	}
	return true
}
