package disposition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/response/pkg/disposition"
)

func TestAttachment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"no filename", "", "attachment"},
		{"plain", "report.pdf", `attachment; filename="report.pdf"`},
		{"strips directories", "/var/data/reports/Q1.pdf", `attachment; filename="Q1.pdf"`},
		{"windows path", `C:\Users\me\notes.txt`, `attachment; filename="notes.txt"`},
		{"quotes escaped", `say "hi".txt`, `attachment; filename="say \"hi\".txt"`},
		{"non ascii", "€ rates.txt", `attachment; filename="? rates.txt"; filename*=UTF-8''%E2%82%AC%20rates.txt`},
		{"dot dot", "..", "attachment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, disposition.Attachment(tt.filename))
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	got, err := disposition.Format("INLINE", "image.png")
	require.NoError(t, err)
	assert.Equal(t, `inline; filename="image.png"`, got)
	assert.Equal(t, `inline; filename="image.png"`, disposition.Inline("a/image.png"))

	_, err = disposition.Format("", "x")
	assert.ErrorIs(t, err, disposition.ErrInvalidType)

	_, err = disposition.Format("form data", "x")
	assert.ErrorIs(t, err, disposition.ErrInvalidType)
}
