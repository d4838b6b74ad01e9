// Package server exposes the zine conversion over HTTP.
package server

import "net/http"

// HandlerWrapper acts as a middleware: it wraps an http.Handler with logic
// that runs before and after ServeHTTP and returns the new handler.
type HandlerWrapper interface {
	Wrap(http.Handler) http.Handler
}

// WrapperFunc adapts a plain middleware func to HandlerWrapper.
type WrapperFunc func(http.Handler) http.Handler

func (f WrapperFunc) Wrap(h http.Handler) http.Handler { return f(h) }

// Router is a ServeMux with per-route and global wrappers.
type Router struct {
	*http.ServeMux // Embedded
	global         []HandlerWrapper
}

// NewRouter 创建路由。global 包裹整个 mux，因此也作用于 405/404 与 OPTIONS 预检。
func NewRouter(global ...HandlerWrapper) *Router {
	return &Router{ServeMux: http.NewServeMux(), global: global}
}

// Handle registers a route pattern. The first wrapper is the outermost.
func (r *Router) Handle(pattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	r.ServeMux.Handle(pattern, chain(handler, handlerWrappers))
}

func (r *Router) HandleFunc(pattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	r.Handle(pattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Handler returns the mux wrapped by the global wrappers.
func (r *Router) Handler() http.Handler {
	return chain(r.ServeMux, r.global)
}

func chain(h http.Handler, wrappers []HandlerWrapper) http.Handler {
	for i := len(wrappers) - 1; i >= 0; i-- {
		h = wrappers[i].Wrap(h)
	}
	return h
}
