// Package fileserv is a minimal HTTP/1.1 file-management server speaking
// directly over TCP sockets.
package fileserv

import (
	"io"
	"log/slog"
	"net"

	"github.com/keremenci/fileserv/config"
	httpsrv "github.com/keremenci/fileserv/internal/server/http"
	"github.com/keremenci/fileserv/internal/server/tcp"
	"github.com/keremenci/fileserv/router"
)

// ListenerConstructor builds the listener the server accepts on. Mostly
// useful in tests to inject a pre-bound listener.
type ListenerConstructor func(network, addr string) (net.Listener, error)

// App wires the accept loop, the protocol layer and a router together.
type App struct {
	addr   string
	cfg    *config.Config
	log    *slog.Logger
	hooks  hooks
	server *tcp.Server
}

// New returns a new App instance listening on addr once served.
func New(addr string) *App {
	return &App{
		addr: addr,
		cfg:  config.Default(),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Tune replaces the default config. Zero values are filled with defaults.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// Log sets the logger. By default the app is silent.
func (a *App) Log(log *slog.Logger) *App {
	a.log = log
	return a
}

// NotifyOnStart calls the callback right before the first Accept.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback when the server is down and no connection
// is being served anymore.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts accepting connections and blocks until the server is stopped
// or the listener fails. A stop requested via Stop is not an error.
func (a *App) Serve(r router.Router, optionalConstructor ...ListenerConstructor) error {
	constructor := optional(optionalConstructor, net.Listen)

	sock, err := constructor("tcp", a.addr)
	if err != nil {
		return err
	}

	handler := httpsrv.NewServer(a.cfg, r, a.log)
	a.server = tcp.NewServer(sock, handler.ServeConn)

	a.log.Info("listening", "addr", sock.Addr().String())
	callIfNotNil(a.hooks.OnStart)

	err = a.server.Start()

	callIfNotNil(a.hooks.OnStop)
	if err == tcp.ErrShutdown {
		return nil
	}

	return err
}

// Stop closes the listener. The connection currently in flight, if any, is
// served to completion.
//
// NOTE: the call isn't blocking; Serve returning is what signals that the
// server is actually down.
func (a *App) Stop() {
	if a.server != nil {
		_ = a.server.Stop()
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

func optional[T any](optionals []T, otherwise T) T {
	if len(optionals) == 0 {
		return otherwise
	}

	return optionals[0]
}
