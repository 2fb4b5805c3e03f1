package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimbusott/access-bridge/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func tagging(tag string, order *[]string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("no middleware returns the handler unchanged", func(t *testing.T) {
		called := false
		h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.True(t, called)
	})

	t.Run("first middleware is outermost", func(t *testing.T) {
		var order []string
		h := httpx.Chain(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				order = append(order, "handler")
			}),
			tagging("outer", &order),
			tagging("inner", &order),
		)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, []string{"outer", "inner", "handler"}, order)
	})

	t.Run("middleware can short-circuit", func(t *testing.T) {
		blocked := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			})
		}

		h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler should not run")
		}), blocked)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	require.JSONEq(t, `{"hello": "world"}`, rec.Body.String())
}
