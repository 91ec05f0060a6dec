// Package http1 frames HTTP/1.1 requests out of raw connection buffers and
// serializes responses back into wire form.
package http1

import (
	"bytes"
	"strings"

	"github.com/keremenci/fileserv/http"
	"github.com/keremenci/fileserv/http/status"
)

var blankLine = []byte("\r\n\r\n")

// Parser decodes one raw connection buffer into one request. It is a pure
// transformation: no side effects, safe to call from any number of
// goroutines, and parsing the same buffer twice yields equal results.
type Parser struct {
	// strict requires the request line to be exactly "METHOD PATH VERSION".
	// The default mode locates the path and version by prefix instead, which
	// tolerates clients that shuffle the token order.
	strict bool
}

func NewParser(strict bool) *Parser {
	return &Parser{strict: strict}
}

// Parse splits the buffer into a header block and a body on the first
// blank-line delimiter and decodes the header block. The body is copied, so
// the passed buffer can be reclaimed right away.
func (p *Parser) Parse(data []byte) (*http.Request, error) {
	head, body, found := bytes.Cut(data, blankLine)
	if !found {
		return nil, status.ErrUnterminatedHeaders
	}

	request := http.NewRequest()
	request.Body = bytes.Clone(body)

	// the header block is textual by definition, and copying it here unties
	// every string below from the connection buffer
	lines := strings.Split(string(head), "\r\n")

	if err := p.parseRequestLine(request, lines[0]); err != nil {
		return nil, err
	}

	for _, line := range lines[1:] {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, status.ErrMalformedHeader
		}

		request.Headers.Set(key, value)
	}

	return request, nil
}

func (p *Parser) parseRequestLine(request *http.Request, line string) error {
	tokens := strings.Split(line, " ")
	request.Method = tokens[0]

	uri, err := p.uriToken(tokens)
	if err != nil {
		return err
	}

	if version, found := versionToken(tokens); found {
		request.Version = version
	}

	path, query, hasQuery := strings.Cut(uri, "?")
	request.Path = strings.Trim(path, "/")

	if hasQuery {
		return parseQuery(request, query)
	}

	return nil
}

// uriToken locates the request URI among the request line tokens. The scan is
// positional in strict mode and prefix-based otherwise, so "GET HTTP/1.1 /"
// still yields "/" when tolerance is on.
func (p *Parser) uriToken(tokens []string) (string, error) {
	if p.strict {
		if len(tokens) != 3 || !strings.HasPrefix(tokens[1], "/") {
			return "", status.ErrMalformedRequestLine
		}

		return tokens[1], nil
	}

	for _, token := range tokens[1:] {
		if strings.HasPrefix(token, "/") {
			return token, nil
		}
	}

	return "", status.ErrMalformedRequestLine
}

// versionToken extracts the protocol version as the substring following
// "HTTP/" of the first token with the "HTTP" prefix. Absence is not an
// error: the version then defaults to 1.1.
func versionToken(tokens []string) (version string, found bool) {
	for _, token := range tokens[1:] {
		if strings.HasPrefix(token, "HTTP") {
			if len(token) < len("HTTP/") {
				return "", false
			}

			return token[len("HTTP/"):], true
		}
	}

	return "", false
}

func parseQuery(request *http.Request, query string) error {
	for _, pair := range strings.Split(query, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return status.ErrMalformedQuery
		}

		request.Params.Set(key, value)
	}

	return nil
}
