package router_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"

	"github.com/oaiiae/address-book/router"
)

type echo struct{}

func (echo) RegisterEcho(api huma.API) {
	huma.Get(api, "/echo/{word}", func(_ context.Context, input *struct {
		Word string `path:"word"`
	}) (*struct{ Body string }, error) {
		return &struct{ Body string }{Body: input.Word}, nil
	})
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNew(t *testing.T) {
	var order []string
	middleware := func(name string) func(huma.Context, func(huma.Context)) {
		return func(ctx huma.Context, next func(huma.Context)) {
			order = append(order, name)
			next(ctx)
		}
	}

	h := router.New("test", "0.0.0",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "metric 1\n") },
		router.OptUseMiddleware(middleware("first"), middleware("second")),
		router.OptGroup("/api",
			router.OptGroup("/v1", router.OptAutoRegister(echo{})),
		),
	)

	t.Run("ok: probes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/liveness").Code)
		assert.Equal(t, http.StatusServiceUnavailable, serve(h, http.MethodGet, "/readiness").Code)
		assert.Equal(t, "metric 1\n", serve(h, http.MethodGet, "/metrics").Body.String())
	})

	t.Run("ok: grouped operation goes through middlewares", func(t *testing.T) {
		order = nil
		resp := serve(h, http.MethodGet, "/api/v1/echo/hello")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `"hello"`, resp.Body.String())
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("ok: openapi document", func(t *testing.T) {
		resp := serve(h, http.MethodGet, "/openapi.json")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "/api/v1/echo/{word}")
	})
}
