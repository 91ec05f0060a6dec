package status

// HTTPError is an error carrying the response code it should be reported with.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest          = NewError(BadRequest, "bad request")
	ErrNotFound            = NewError(NotFound, "Not Found")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")

	// Parse failures. Each structural violation gets its own value, so the
	// dispatcher boundary (and tests) can tell them apart.
	ErrUnterminatedHeaders  = NewError(BadRequest, "no blank line terminating the header block")
	ErrMalformedRequestLine = NewError(BadRequest, "request line contains no path token")
	ErrMalformedQuery       = NewError(BadRequest, "query parameter lacks a value")
	ErrMalformedHeader      = NewError(BadRequest, "header line lacks a key-value separator")
	ErrMalformedMultipart   = NewError(BadRequest, "malformed multipart/form-data body")
)
