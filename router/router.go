package router

import "github.com/keremenci/fileserv/http"

// Router is the boundary between the protocol core and the application.
// OnRequest receives a fully parsed request; OnError receives whatever parse
// failure the core surfaced, along with a nil request, and is responsible
// for translating it into a client-visible response.
type Router interface {
	OnRequest(request *http.Request) *http.Response
	OnError(request *http.Request, err error) *http.Response
}
