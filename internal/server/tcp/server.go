package tcp

import (
	"errors"
	"net"
	"sync/atomic"
)

// ErrShutdown is returned by Start after the listener was closed via Stop.
var ErrShutdown = errors.New("server is shut down")

type onConnection func(net.Conn)

// Server owns the accept loop. Connections are served strictly one at a
// time: a connection is fully handled and closed before the next Accept.
// The callback is a self-contained unit of work, so moving to a concurrent
// dispatch model is a one-line change here and nowhere else.
type Server struct {
	sock     net.Listener
	onConn   onConnection
	shutdown atomic.Bool
}

func NewServer(sock net.Listener, onConn onConnection) *Server {
	return &Server{
		sock:   sock,
		onConn: onConn,
	}
}

func (s *Server) Start() error {
	for {
		conn, err := s.sock.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return ErrShutdown
			}

			return err
		}

		s.onConn(conn)
	}
}

// Stop closes the listener, which makes Start return ErrShutdown once the
// connection in flight (if any) is finished.
// Stop may be called from any goroutine.
func (s *Server) Stop() error {
	s.shutdown.Store(true)

	return s.sock.Close()
}
