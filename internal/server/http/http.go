package http

import (
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/keremenci/fileserv/config"
	"github.com/keremenci/fileserv/http"
	"github.com/keremenci/fileserv/internal/server/tcp"
	"github.com/keremenci/fileserv/internal/transport/http1"
	"github.com/keremenci/fileserv/router"
)

// Server handles a single connection at a time: drain the socket, parse,
// dispatch, serialize, close. It holds no per-request state of its own
// besides re-usable buffers, so a connection is a self-contained unit of
// work.
type Server struct {
	cfg        *config.Config
	router     router.Router
	parser     *http1.Parser
	serializer *http1.Serializer
	log        *slog.Logger
}

func NewServer(cfg *config.Config, r router.Router, log *slog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		router:     r,
		parser:     http1.NewParser(cfg.HTTP.StrictRequestLine),
		serializer: http1.NewSerializer(cfg.HTTP.DefaultHeaders),
		log:        log,
	}
}

// ServeConn processes the connection from the first byte to the response and
// closes it. Failures never propagate: whatever happens inside, including a
// panicking handler, is logged and the accept loop lives on.
func (s *Server) ServeConn(conn net.Conn) {
	id := uuid.NewString()
	started := time.Now()

	defer func() {
		_ = conn.Close()

		if p := recover(); p != nil {
			s.log.Error("handler panicked",
				"request", id,
				"remote", conn.RemoteAddr().String(),
				"panic", p,
			)
		}
	}()

	data, err := tcp.ReadAll(conn, s.cfg.NET.ReadTimeout, s.cfg.NET.ReadBufferSize)
	if err != nil {
		s.log.Warn("dropping connection",
			"request", id,
			"remote", conn.RemoteAddr().String(),
			"error", err,
		)
		return
	}

	resp := s.handle(id, conn.RemoteAddr(), data)

	if err := s.write(conn, resp); err != nil {
		s.log.Warn("response write failed",
			"request", id,
			"remote", conn.RemoteAddr().String(),
			"error", err,
		)
		return
	}

	code, _, _, _ := resp.Reveal()
	s.log.Info("request served",
		"request", id,
		"remote", conn.RemoteAddr().String(),
		"status", int(code),
		"duration", time.Since(started),
	)
}

func (s *Server) handle(id string, remote net.Addr, data []byte) *http.Response {
	request, err := s.parser.Parse(data)
	if err != nil {
		s.log.Warn("malformed request",
			"request", id,
			"remote", remote.String(),
			"error", err,
		)
		return s.router.OnError(nil, err)
	}

	request.Remote = remote
	s.log.Debug("request parsed",
		"request", id,
		"method", request.Method,
		"path", request.Path,
		"version", request.Version,
		"headers", request.Headers.Len(),
		"body", len(request.Body),
	)

	return s.router.OnRequest(request)
}

func (s *Server) write(conn net.Conn, resp *http.Response) error {
	_, err := conn.Write(s.serializer.Serialize(resp))
	return err
}
