// Package table implements a flat dispatch table, routing requests by the
// exact (method, path) pair.
package table

import (
	"strings"

	"github.com/keremenci/fileserv/http"
	"github.com/keremenci/fileserv/http/status"
	"github.com/keremenci/fileserv/router"
)

type Handler func(request *http.Request) *http.Response

// Router maps "METHOD-path" keys onto handlers. Paths are registered and
// looked up with surrounding slashes stripped, matching how the parser
// stores them.
type Router struct {
	routes map[string]Handler
}

func New() *Router {
	return &Router{
		routes: map[string]Handler{},
	}
}

// Route registers a handler for the method and path, overwriting a previous
// registration if any.
func (r *Router) Route(method, path string, handler Handler) *Router {
	r.routes[routeKey(method, path)] = handler
	return r
}

func (r *Router) Get(path string, handler Handler) *Router {
	return r.Route("GET", path, handler)
}

func (r *Router) Post(path string, handler Handler) *Router {
	return r.Route("POST", path, handler)
}

func (r *Router) Put(path string, handler Handler) *Router {
	return r.Route("PUT", path, handler)
}

func (r *Router) Delete(path string, handler Handler) *Router {
	return r.Route("DELETE", path, handler)
}

func (r *Router) OnRequest(request *http.Request) *http.Response {
	handler, found := r.routes[routeKey(request.Method, request.Path)]
	if !found {
		return http.NewResponse().Error(status.ErrNotFound)
	}

	return handler(request)
}

func (r *Router) OnError(_ *http.Request, err error) *http.Response {
	return http.NewResponse().Error(err)
}

func routeKey(method, path string) string {
	return method + "-" + strings.Trim(path, "/")
}

var _ router.Router = New()
