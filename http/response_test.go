package http

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keremenci/fileserv/http/status"
)

func TestResponse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		code, text, headers, body := NewResponse().Reveal()
		require.Equal(t, status.OK, code)
		require.Equal(t, status.Text(status.OK), text)
		require.Empty(t, headers)
		require.Empty(t, body)
	})

	t.Run("code sets status text", func(t *testing.T) {
		code, text, _, _ := NewResponse().Code(status.NotFound).Reveal()
		require.Equal(t, status.NotFound, code)
		require.Equal(t, status.Status("Not Found"), text)
	})

	t.Run("header overwrites", func(t *testing.T) {
		resp := NewResponse().
			Header("Content-Type", "text/plain").
			Header("Content-Type", "application/json")
		_, _, headers, _ := resp.Reveal()
		require.Len(t, headers, 1)
		require.Equal(t, "application/json", headers[0].Value)
		require.True(t, resp.HasHeader("Content-Type"))
		require.False(t, resp.HasHeader("content-type"))
	})

	t.Run("json", func(t *testing.T) {
		resp := NewResponse().JSON(map[string]string{"message": "hi"})
		_, _, _, body := resp.Reveal()
		require.JSONEq(t, `{"message":"hi"}`, string(body))
		require.True(t, resp.HasHeader("Content-Type"))
	})

	t.Run("http error", func(t *testing.T) {
		code, _, _, body := NewResponse().Error(status.ErrMalformedQuery).Reveal()
		require.Equal(t, status.BadRequest, code)
		require.JSONEq(t, `{"message":"query parameter lacks a value"}`, string(body))
	})

	t.Run("opaque error", func(t *testing.T) {
		code, _, _, body := NewResponse().Error(assertErr{}).Reveal()
		require.Equal(t, status.InternalServerError, code)
		require.JSONEq(t, `{"message":"Internal Server Error"}`, string(body))
	})
}

type assertErr struct{}

func (assertErr) Error() string { return "filesystem exploded" }
