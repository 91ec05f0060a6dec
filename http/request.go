package http

import (
	"net"

	"github.com/keremenci/fileserv/kv"
)

type (
	Headers = *kv.Storage
	Params  = *kv.Storage
)

// Request represents a single parsed HTTP request. Each connection carries
// exactly one: there is no connection reuse, so the request dies together
// with its connection.
type Request struct {
	// Method is the request method exactly as received.
	Method string
	// Path is the request path with leading and trailing slashes stripped,
	// so "/isPrime/" and "isPrime" address the same resource.
	Path string
	// Params are the decoded query parameters. On duplicate keys the last
	// occurrence wins.
	Params Params
	// Version is the protocol version from the request line ("1.1" when the
	// client didn't send one).
	Version string
	// Headers holds header pairs with keys exactly as received. Duplicate
	// header lines overwrite earlier ones.
	Headers Headers
	// Body is the raw message body. May be empty. It owns its bytes: no
	// aliasing back into the connection's read buffer.
	Body []byte
	// Remote holds the remote address of the connection the request
	// arrived on.
	Remote net.Addr
}

func NewRequest() *Request {
	return &Request{
		Version: "1.1",
		Params:  kv.New(),
		Headers: kv.New(),
	}
}

// ContentType returns the value of the Content-Type header, if any.
func (r *Request) ContentType() string {
	return r.Headers.Value("Content-Type")
}
