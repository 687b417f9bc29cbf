package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/response/pkg/charset"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("utf-8 passthrough", func(t *testing.T) {
		t.Parallel()
		got, err := charset.Encode("héllo", "UTF-8")
		require.NoError(t, err)
		assert.Equal(t, []byte("héllo"), got)
	})

	t.Run("latin1", func(t *testing.T) {
		t.Parallel()
		got, err := charset.Encode("héllo", "iso-8859-1")
		require.NoError(t, err)
		assert.Equal(t, []byte{'h', 0xe9, 'l', 'l', 'o'}, got)
	})

	t.Run("unknown charset", func(t *testing.T) {
		t.Parallel()
		_, err := charset.Encode("x", "klingon")
		assert.ErrorIs(t, err, charset.ErrUnknownCharset)
	})

	t.Run("unencodable rune", func(t *testing.T) {
		t.Parallel()
		_, err := charset.Encode("日本", "iso-8859-1")
		assert.ErrorIs(t, err, charset.ErrUnencodable)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, charset.Validate(""))
	assert.NoError(t, charset.Validate("utf8"))
	assert.NoError(t, charset.Validate("windows-1252"))
	assert.ErrorIs(t, charset.Validate("nope"), charset.ErrUnknownCharset)
	assert.True(t, charset.IsUTF8(" UTF-8 "))
	assert.False(t, charset.IsUTF8("latin1"))
}
