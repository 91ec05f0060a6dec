package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	require.Equal(t, Status("OK"), Text(OK))
	require.Equal(t, Status("Not Found"), Text(NotFound))
	require.Equal(t, Status("Bad Request"), Text(BadRequest))
	require.Equal(t, Status("Internal Server Error"), Text(InternalServerError))
	require.Equal(t, Status("Unknown Status Code"), Text(Code(999)))
}

func TestHTTPError(t *testing.T) {
	err := NewError(BadRequest, "something went wrong")
	httpErr, ok := err.(HTTPError)
	require.True(t, ok)
	require.Equal(t, BadRequest, httpErr.Code)
	require.Equal(t, "something went wrong", err.Error())
}
