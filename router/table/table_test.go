package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keremenci/fileserv/http"
	"github.com/keremenci/fileserv/http/status"
)

func newRequest(method, path string) *http.Request {
	request := http.NewRequest()
	request.Method = method
	request.Path = path
	return request
}

func TestRouter(t *testing.T) {
	r := New().
		Get("isPrime", func(*http.Request) *http.Response {
			return http.NewResponse().String("prime")
		}).
		Delete("/remove/", func(*http.Request) *http.Response {
			return http.NewResponse().String("removed")
		})

	t.Run("dispatch by method and path", func(t *testing.T) {
		_, _, _, body := r.OnRequest(newRequest("GET", "isPrime")).Reveal()
		require.Equal(t, "prime", string(body))
	})

	t.Run("registration slashes are normalized", func(t *testing.T) {
		_, _, _, body := r.OnRequest(newRequest("DELETE", "remove")).Reveal()
		require.Equal(t, "removed", string(body))
	})

	t.Run("unknown path", func(t *testing.T) {
		code, _, _, body := r.OnRequest(newRequest("GET", "nope")).Reveal()
		require.Equal(t, status.NotFound, code)
		require.JSONEq(t, `{"message":"Not Found"}`, string(body))
	})

	t.Run("method mismatch is a 404 too", func(t *testing.T) {
		code, _, _, _ := r.OnRequest(newRequest("POST", "isPrime")).Reveal()
		require.Equal(t, status.NotFound, code)
	})

	t.Run("parse errors become 400s", func(t *testing.T) {
		code, _, _, body := r.OnError(nil, status.ErrMalformedRequestLine).Reveal()
		require.Equal(t, status.BadRequest, code)
		require.JSONEq(t, `{"message":"request line contains no path token"}`, string(body))
	})
}
