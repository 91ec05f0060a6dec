package http1

import (
	"sort"
	"strconv"

	"github.com/keremenci/fileserv/http"
	"github.com/keremenci/fileserv/kv"
)

// Serializer renders responses into their wire form. The instance is bound to
// a single connection at a time: the buffer is re-used between calls.
type Serializer struct {
	defaults []kv.Pair
	buff     []byte
}

// NewSerializer returns a serializer carrying the default headers which are
// attached to every response unless overridden by it.
func NewSerializer(defaultHeaders map[string]string) *Serializer {
	defaults := make([]kv.Pair, 0, len(defaultHeaders))
	for key, value := range defaultHeaders {
		defaults = append(defaults, kv.Pair{Key: key, Value: value})
	}

	// maps are unordered, and response bytes should not depend on map
	// iteration order
	sort.Slice(defaults, func(i, j int) bool {
		return defaults[i].Key < defaults[j].Key
	})

	return &Serializer{defaults: defaults}
}

// Serialize renders the response line, headers, the blank-line delimiter and
// the body. The returned slice is valid until the next call.
func (s *Serializer) Serialize(resp *http.Response) []byte {
	code, text, headers, body := resp.Reveal()

	s.buff = s.buff[:0]
	s.buff = append(s.buff, "HTTP/1.1 "...)
	s.buff = strconv.AppendUint(s.buff, uint64(code), 10)
	s.buff = append(s.buff, ' ')
	s.buff = append(s.buff, text...)
	s.buff = append(s.buff, '\r', '\n')

	for _, header := range headers {
		s.appendHeader(header)
	}

	for _, header := range s.defaults {
		if !resp.HasHeader(header.Key) {
			s.appendHeader(header)
		}
	}

	if !resp.HasHeader("Content-Length") {
		s.appendHeader(kv.Pair{
			Key:   "Content-Length",
			Value: strconv.Itoa(len(body)),
		})
	}

	s.buff = append(s.buff, '\r', '\n')
	s.buff = append(s.buff, body...)

	return s.buff
}

func (s *Serializer) appendHeader(header kv.Pair) {
	s.buff = append(s.buff, header.Key...)
	s.buff = append(s.buff, ':', ' ')
	s.buff = append(s.buff, header.Value...)
	s.buff = append(s.buff, '\r', '\n')
}
