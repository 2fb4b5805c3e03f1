package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimbusott/access-bridge/internal/bridge/domain"
	"github.com/nimbusott/access-bridge/internal/bridge/upstream"
	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/stretchr/testify/require"
)

// fakeEntitlementsAPI serves the entitlements and plans endpoints with raw
// JSON bodies, so tests can exercise malformed plan entries.
func fakeEntitlementsAPI(t *testing.T, entitlementsBody, plansBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/sites/site1/entitlements", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(entitlementsBody))
	})
	mux.HandleFunc("GET /v3/sites/site1/plans", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(plansBody))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetEntitledPlans(t *testing.T) {
	t.Parallel()

	t.Run("normalizes to id and exp, dropping incomplete entries", func(t *testing.T) {
		server := fakeEntitlementsAPI(t, `{
			"plans": [
				{"id": "plan1234", "exp": 1893456000, "title": "Premium", "price": 9.99},
				{"id": "no-exp"},
				{"exp": 1893456000},
				{"id": "free", "exp": 4102444800}
			]
		}`, `{"plans": []}`)

		svc := &PlansService{Entitlements: upstream.NewEntitlementsClient(server.URL, "site1")}

		plans, err := svc.GetEntitledPlans(context.Background(), "Bearer good")
		require.NoError(t, err)
		require.Equal(t, []domain.Plan{
			{ID: "plan1234", Exp: 1893456000},
			{ID: "free", Exp: 4102444800},
		}, plans)
	})

	t.Run("empty entitlements yield an empty non-nil list", func(t *testing.T) {
		server := fakeEntitlementsAPI(t, `{"plans": []}`, `{"plans": []}`)
		svc := &PlansService{Entitlements: upstream.NewEntitlementsClient(server.URL, "site1")}

		plans, err := svc.GetEntitledPlans(context.Background(), "")
		require.NoError(t, err)
		require.NotNil(t, plans)
		require.Empty(t, plans)
	})

	t.Run("upstream rejection propagates instead of flattening to empty", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v3/sites/site1/entitlements", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(bridgesdk.ErrorResponse{
				Errors: []bridgesdk.ErrorItem{{Code: "unauthorized", Description: "Bad credential."}},
			})
		})
		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		svc := &PlansService{Entitlements: upstream.NewEntitlementsClient(server.URL, "site1")}

		plans, err := svc.GetEntitledPlans(context.Background(), "Bearer bad")
		require.ErrorIs(t, err, bridgesdk.ErrUnauthorized)
		require.Nil(t, plans)
	})
}

func TestGetAvailablePlans(t *testing.T) {
	t.Parallel()

	server := fakeEntitlementsAPI(t, `{"plans": []}`, `{
		"plans": [
			{"id": "plan1234", "exp": 1893456000},
			{"id": "broken"}
		]
	}`)

	svc := &PlansService{Entitlements: upstream.NewEntitlementsClient(server.URL, "site1")}

	plans, err := svc.GetAvailablePlans(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Plan{{ID: "plan1234", Exp: 1893456000}}, plans)
}
