// Package debugserver exposes a local HTTP surface for exercising the
// compiler and the stored-query store without the real chat platform.
// It is a developer tool, not the production webhook receiver or the
// archive search client; those live with the chat integration.
package debugserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/archquery/archquery/internal/cache"
	"github.com/archquery/archquery/internal/store"
	"github.com/archquery/archquery/pkg/archquery"
)

// Server wraps a chi.Router around the compiler façade, a memoizing
// Cache, and a stored-query Store. It never holds compiler state of its
// own: every request calls straight into archquery.Parse, the Cache, or
// the Store.
type Server struct {
	router   chi.Router
	compiler *archquery.Compiler
	cache    cache.Cache
	store    store.Store
	logger   *zap.Logger
}

// New builds a Server. compiler is typically archquery.New(), optionally
// with archquery.WithDebug() so /v1/parse can also return the token
// stream (the AST is not serialized: Result.Expr is excluded from JSON).
// c may be nil, in which case handleParse always calls
// straight through to the compiler.
func New(compiler *archquery.Compiler, st store.Store, c cache.Cache, logger *zap.Logger) *Server {
	s := &Server{compiler: compiler, store: st, cache: c, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(recoverer(logger))

	r.Post("/v1/parse", s.handleParse)
	r.Route("/v1/queries", func(r chi.Router) {
		r.Get("/", s.handleListQueries)
		r.Post("/", s.handleSaveQuery)
		r.Get("/{name}", s.handleGetQuery)
		r.Delete("/{name}", s.handleDeleteQuery)
	})

	s.router = r
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
