package fetcher_test

import (
	"testing"

	"github.com/fwojciec/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "absolute https", url: "https://example.com/a", want: true},
		{name: "with port", url: "http://localhost:8080/x", want: true},
		{name: "plain words", url: "not a url", want: false},
		{name: "relative path", url: "/a/b.png", want: false},
		{name: "scheme without host", url: "mailto:someone@example.com", want: false},
		{name: "host without scheme", url: "//cdn.example.com/a.png", want: false},
		{name: "empty", url: "", want: false},
		{name: "unparseable", url: "http://[::1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fetcher.ValidateURL(tt.url))
		})
	}
}

func TestURLAccessors(t *testing.T) {
	t.Parallel()

	t.Run("decomposes an absolute URL", func(t *testing.T) {
		t.Parallel()

		raw := "https://news.example:8443/world/story?id=1"

		scheme, err := fetcher.URLScheme(raw)
		require.NoError(t, err)
		authority, err := fetcher.URLAuthority(raw)
		require.NoError(t, err)
		path, err := fetcher.URLPath(raw)
		require.NoError(t, err)

		assert.Equal(t, "https", scheme)
		assert.Equal(t, "news.example:8443", authority)
		assert.Equal(t, "/world/story", path)
	})

	t.Run("propagates parse errors", func(t *testing.T) {
		t.Parallel()

		_, err := fetcher.URLAuthority("http://[::1")

		require.Error(t, err)
		assert.Equal(t, fetcher.EINVALID, fetcher.ErrorCode(err))
	})
}
