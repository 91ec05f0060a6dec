package http

import (
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"

	"github.com/keremenci/fileserv/http/status"
	"github.com/keremenci/fileserv/kv"
)

// why 5? Server, Content-Type plus the three download headers. More simply
// spills into a second allocation, which is fine.
const preallocRespHeaders = 5

// Response is a builder for an HTTP response. All methods return the
// receiver, so calls are chainable.
type Response struct {
	code    status.Code
	status  status.Status
	headers []kv.Pair
	body    []byte
}

// NewResponse returns a new instance of the Response object with the status
// code set to 200 OK and pre-allocated space for response headers.
func NewResponse() *Response {
	return &Response{
		code:    status.OK,
		headers: make([]kv.Pair, 0, preallocRespHeaders),
	}
}

// Code sets a response code and a corresponding status text. In case of an
// unknown code, "Unknown Status Code" is used; call Status explicitly then.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	r.status = status.Text(code)
	return r
}

// Status overrides the status text. Clients generally ignore it, so there is
// rarely a reason to call this.
func (r *Response) Status(text status.Status) *Response {
	r.status = text
	return r
}

// Header sets a header value, overwriting the previous one if the key was
// already set.
func (r *Response) Header(key, value string) *Response {
	for i, pair := range r.headers {
		if pair.Key == key {
			r.headers[i].Value = value
			return r
		}
	}

	r.headers = append(r.headers, kv.Pair{Key: key, Value: value})
	return r
}

// HasHeader tells whether the header was explicitly set on the response.
func (r *Response) HasHeader(key string) bool {
	for _, pair := range r.headers {
		if pair.Key == key {
			return true
		}
	}

	return false
}

// String sets the response body to the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response body to the passed slice WITHOUT copying. Changing
// the passed slice later will affect the response by itself.
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	return r
}

// Write implements io.Writer. It always returns n=len(b) and err=nil.
func (r *Response) Write(b []byte) (n int, err error) {
	r.body = append(r.body, b...)
	return len(b), nil
}

// TryJSON encodes the model into the response body and sets the JSON
// content type.
func (r *Response) TryJSON(model any) (*Response, error) {
	r.body = r.body[:0]
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.Header("Content-Type", "application/json"), err
}

// JSON does the same as TryJSON does, except an encoding failure is
// implicitly turned into a 500 response.
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error renders the error as a JSON message response. An instance of
// status.HTTPError brings its own code; any other error is reported as
// 500 Internal Server Error without leaking its text to the client.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	if httpErr, ok := err.(status.HTTPError); ok {
		return r.Code(httpErr.Code).JSON(errorBody{Message: httpErr.Message})
	}

	return r.Code(status.InternalServerError).
		JSON(errorBody{Message: string(status.Text(status.InternalServerError))})
}

type errorBody struct {
	Message string `json:"message"`
}

// Reveal grants access to the assembled response fields. Used by the
// serializer; handlers have no reason to call it.
func (r *Response) Reveal() (code status.Code, text status.Status, headers []kv.Pair, body []byte) {
	text = r.status
	if len(text) == 0 {
		text = status.Text(r.code)
	}

	return r.code, text, r.headers, r.body
}
