package tcp

import (
	"errors"
	"io"
	"net"
	"time"
)

// ReadAll drains the connection until the peer closes the stream or no data
// arrives for the duration of the timeout, and returns everything received in
// arrival order. Neither condition is an error: both simply mean no more data
// is coming, and the caller cannot tell them apart.
//
// Requests are framed solely by this idle gap. A client that pauses
// mid-request for longer than the timeout gets truncated; there is no
// Content-Length awareness here on purpose.
func ReadAll(conn net.Conn, timeout time.Duration, buffsize int) ([]byte, error) {
	var data []byte
	buff := make([]byte, buffsize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return data, err
		}

		n, err := conn.Read(buff)
		data = append(data, buff[:n]...)

		switch {
		case err == nil:
		case isEOI(err):
			return data, nil
		default:
			return data, err
		}
	}
}

// isEOI tells whether the read error only signals the end of input.
func isEOI(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
