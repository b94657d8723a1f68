package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

type (
	Registrar func(r chi.Router, d deps.Deps)
	// Middleware is built once deps are known, when RegisterAll runs.
	Middleware func(d deps.Deps) func(http.Handler) http.Handler
)

type entry struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var registry []entry

// Register a named route group with optional group middlewares. Groups are
// mounted in registration order.
func Register(name string, reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{name: name, reg: reg, mws: mws})
}

// RegisterAll mounts every group on r. Called once from NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		if len(e.mws) == 0 {
			e.reg(r, d)
		} else {
			built := make([]func(http.Handler) http.Handler, 0, len(e.mws))
			for _, m := range e.mws {
				built = append(built, m(d))
			}
			e.reg(r.With(built...), d)
		}
		d.Logger.Debug("routes registered", logger.String("group", e.name))
	}
}

// restricted limits a group to the operator CIDR allow-list.
func restricted(d deps.Deps) func(http.Handler) http.Handler {
	return mw.AllowCIDRs(d.MetricsCIDRS, d.TrustProxy, d.Logger)
}
