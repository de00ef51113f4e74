package router

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
)

// Option configures the [huma.API] it is given.
type Option = func(huma.API)

// New returns a mux serving liveness, readiness and metrics probes next to
// a [huma.API] configured by opts.
func New(
	title, version string,
	readiness http.HandlerFunc,
	writeMetrics http.HandlerFunc,
	opts ...Option,
) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/liveness", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("/readiness", readiness)
	mux.HandleFunc("/metrics", writeMetrics)

	api := humago.New(mux, huma.DefaultConfig(title, version))
	for _, opt := range opts {
		opt(api)
	}

	return mux
}

func OptUseMiddleware(middlewares ...func(huma.Context, func(huma.Context))) Option {
	return func(api huma.API) { api.UseMiddleware(middlewares...) }
}

// OptGroup applies opts to a [huma.Group] mounted at prefix.
func OptGroup(prefix string, opts ...Option) Option {
	return func(api huma.API) {
		group := huma.NewGroup(api, prefix)
		for _, opt := range opts {
			opt(group)
		}
	}
}

// OptAutoRegister registers the operations of server, see [huma.AutoRegister].
func OptAutoRegister(server any) Option {
	return func(api huma.API) { huma.AutoRegister(api, server) }
}
