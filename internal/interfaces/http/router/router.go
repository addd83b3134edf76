// Package router assembles the HTTP route tree.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a registrar
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterProtected queues a registrar whose routes run behind the given
// middleware chain.
func (r *Router) RegisterProtected(registrar RouteRegistrar, chain ...gin.HandlerFunc) *Router {
	r.registrars = append(r.registrars, protectedRegistrar{inner: registrar, chain: chain})
	return r
}

// Setup registers all queued routes on the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

type protectedRegistrar struct {
	inner RouteRegistrar
	chain []gin.HandlerFunc
}

func (p protectedRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("", p.chain...)
	p.inner.RegisterRoutes(group)
}
