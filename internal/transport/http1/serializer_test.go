package http1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keremenci/fileserv/http"
	"github.com/keremenci/fileserv/http/status"
)

func TestSerialize(t *testing.T) {
	defaults := map[string]string{
		"Server":       "fileserv",
		"Content-Type": "application/json",
	}

	t.Run("response line and defaults", func(t *testing.T) {
		serializer := NewSerializer(defaults)
		raw := string(serializer.Serialize(http.NewResponse().String("hello")))

		require.True(t, strings.HasPrefix(raw, "HTTP/1.1 200 OK\r\n"))
		require.Contains(t, raw, "Server: fileserv\r\n")
		require.Contains(t, raw, "Content-Type: application/json\r\n")
		require.Contains(t, raw, "Content-Length: 5\r\n")
		require.True(t, strings.HasSuffix(raw, "\r\n\r\nhello"))
	})

	t.Run("explicit header overrides default", func(t *testing.T) {
		serializer := NewSerializer(defaults)
		resp := http.NewResponse().
			Code(status.NotFound).
			Header("Content-Type", "text/plain").
			String("nope")
		raw := string(serializer.Serialize(resp))

		require.True(t, strings.HasPrefix(raw, "HTTP/1.1 404 Not Found\r\n"))
		require.Contains(t, raw, "Content-Type: text/plain\r\n")
		require.Equal(t, 1, strings.Count(raw, "Content-Type"))
	})

	t.Run("empty body still carries the delimiter", func(t *testing.T) {
		serializer := NewSerializer(nil)
		raw := string(serializer.Serialize(http.NewResponse().Code(status.NoContent)))

		require.Contains(t, raw, "Content-Length: 0\r\n")
		require.True(t, strings.HasSuffix(raw, "\r\n\r\n"))
	})

	t.Run("deterministic output", func(t *testing.T) {
		serializer := NewSerializer(defaults)
		first := string(serializer.Serialize(http.NewResponse().String("x")))
		second := string(serializer.Serialize(http.NewResponse().String("x")))
		require.Equal(t, first, second)
	})
}
