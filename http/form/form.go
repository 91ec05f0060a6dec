// Package form decodes multipart/form-data bodies. All splitting operates on
// raw byte slices: payloads are arbitrary binary data and must never travel
// through a text decoding.
package form

import (
	"bytes"
	"strings"

	"github.com/keremenci/fileserv/http/status"
	"github.com/keremenci/fileserv/kv"
)

var blankLine = []byte("\r\n\r\n")

// Part is a single decoded part of a multipart body.
type Part struct {
	// Headers are the part's own headers, keys exactly as received.
	Headers *kv.Storage
	// Payload is the part's binary payload. It owns its bytes and stays
	// valid after the request buffer is gone.
	Payload []byte
}

// Name returns the name parameter of the part's Content-Disposition header.
func (p Part) Name() string {
	return dispositionParam(p.Headers.Value("Content-Disposition"), "name")
}

// Filename returns the filename parameter of the part's Content-Disposition
// header, if any.
func (p Part) Filename() string {
	return dispositionParam(p.Headers.Value("Content-Disposition"), "filename")
}

// ContentType returns the part's media type with parameters stripped.
func (p Part) ContentType() string {
	value, _, _ := strings.Cut(p.Headers.Value("Content-Type"), ";")
	return strings.TrimSpace(value)
}

// Parse splits the body on the boundary token into an ordered sequence of
// parts. The first element of the split (the preamble) and the last one (the
// closing boundary remnant) are discarded; a body carrying only those decodes
// to an empty sequence.
func Parse(body []byte, boundary string) ([]Part, error) {
	delim := append([]byte("--"), boundary...)
	sections := bytes.Split(body, delim)
	if len(sections) == 1 {
		// the boundary never occurs in the body
		return nil, status.ErrMalformedMultipart
	}
	if len(sections) < 3 {
		// only preamble and epilogue, no parts in between
		return nil, nil
	}

	sections = sections[1 : len(sections)-1]
	parts := make([]Part, 0, len(sections))

	for _, section := range sections {
		part, err := parsePart(section)
		if err != nil {
			return nil, err
		}

		parts = append(parts, part)
	}

	return parts, nil
}

func parsePart(section []byte) (Part, error) {
	head, payload, found := bytes.Cut(section, blankLine)
	if !found {
		return Part{}, status.ErrMalformedMultipart
	}

	// the first line of the head is the remnant of the boundary's own line,
	// not a real header
	lines := bytes.Split(head, []byte("\r\n"))[1:]
	headers := kv.NewPrealloc(len(lines))

	for _, line := range lines {
		key, value, found := bytes.Cut(line, []byte(": "))
		if !found {
			return Part{}, status.ErrMalformedHeader
		}

		headers.Set(string(key), string(value))
	}

	return Part{
		Headers: headers,
		Payload: stripTrailingCRLF(bytes.Clone(payload)),
	}, nil
}

// stripTrailingCRLF removes the line break preceding the next boundary, which
// belongs to the boundary delimiter rather than to the payload.
func stripTrailingCRLF(payload []byte) []byte {
	if n := len(payload); n > 0 && payload[n-1] == '\n' {
		payload = payload[:n-1]

		if n := len(payload); n > 0 && payload[n-1] == '\r' {
			payload = payload[:n-1]
		}
	}

	return payload
}

// Boundary extracts the boundary token from a Content-Type header value.
func Boundary(contentType string) (boundary string, found bool) {
	for _, param := range strings.Split(contentType, ";") {
		param = strings.TrimSpace(param)

		if strings.HasPrefix(param, "boundary") {
			_, value, ok := strings.Cut(param, "=")
			if !ok {
				return "", false
			}

			return strings.Trim(value, `"`), true
		}
	}

	return "", false
}

func dispositionParam(disposition, key string) string {
	for _, param := range strings.Split(disposition, ";") {
		param = strings.TrimSpace(param)

		if strings.HasPrefix(param, key+"=") {
			_, value, _ := strings.Cut(param, "=")
			return strings.Trim(value, `"`)
		}
	}

	return ""
}
