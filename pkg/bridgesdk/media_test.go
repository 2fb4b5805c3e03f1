package bridgesdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/stretchr/testify/require"
)

// deliveryStub is a fake delivery gateway serving one media item. Passports
// in rejected are answered with 403.
type deliveryStub struct {
	calls    atomic.Int64
	rejected map[string]bool
}

func newDeliveryStub(t *testing.T, rejected map[string]bool) (*deliveryStub, *httptest.Server) {
	t.Helper()

	stub := &deliveryStub{rejected: rejected}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/media/{media_id}", func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)

		passport := r.URL.Query().Get("passport")
		if passport == "" || stub.rejected[passport] {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(bridgesdk.ErrorResponse{
				Errors: []bridgesdk.ErrorItem{{Code: "forbidden", Description: "Passport rejected."}},
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bridgesdk.Media{Title: "media-" + r.PathValue("media_id")})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return stub, server
}

func TestGetMediaByID(t *testing.T) {
	t.Parallel()

	t.Run("fetches with the cached passport", func(t *testing.T) {
		bridge, bridgeServer := newBridgeStub(t)
		delivery, deliveryServer := newDeliveryStub(t, nil)

		session := bridgesdk.NewSession(bridgesdk.NewSDKClient(bridgeServer.URL, "site1"))
		media := bridgesdk.NewMediaClient(session, deliveryServer.URL)

		item, err := media.GetMediaByID(context.Background(), "jZKs93kd")
		require.NoError(t, err)
		require.Equal(t, "media-jZKs93kd", item.Title)
		require.Equal(t, int64(1), bridge.generateCalls.Load())
		require.Equal(t, int64(1), delivery.calls.Load())
	})

	t.Run("single 403 triggers one refresh and one retry", func(t *testing.T) {
		bridge, bridgeServer := newBridgeStub(t)

		// The first generated passport is rejected; the refreshed one is not.
		delivery, deliveryServer := newDeliveryStub(t, map[string]bool{
			"generated-passport-1": true,
		})

		session := bridgesdk.NewSession(bridgesdk.NewSDKClient(bridgeServer.URL, "site1"))
		media := bridgesdk.NewMediaClient(session, deliveryServer.URL)

		item, err := media.GetMediaByID(context.Background(), "abc")
		require.NoError(t, err)
		require.Equal(t, "media-abc", item.Title)
		require.Equal(t, int64(1), bridge.generateCalls.Load())
		require.Equal(t, int64(1), bridge.refreshCalls.Load())
		require.Equal(t, int64(2), delivery.calls.Load())
	})

	t.Run("second 403 propagates without a third call", func(t *testing.T) {
		bridge, bridgeServer := newBridgeStub(t)
		delivery, deliveryServer := newDeliveryStub(t, map[string]bool{
			"generated-passport-1": true,
			"refreshed-passport-2": true,
		})

		session := bridgesdk.NewSession(bridgesdk.NewSDKClient(bridgeServer.URL, "site1"))
		media := bridgesdk.NewMediaClient(session, deliveryServer.URL)

		item, err := media.GetMediaByID(context.Background(), "abc")
		require.ErrorIs(t, err, bridgesdk.ErrForbidden)
		require.Nil(t, item)

		// Exactly two delivery calls and one refresh: the retry never loops.
		require.Equal(t, int64(2), delivery.calls.Load())
		require.Equal(t, int64(1), bridge.refreshCalls.Load())
	})

	t.Run("no passport means no delivery call", func(t *testing.T) {
		bridge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(bridgesdk.ErrorResponse{
				Errors: []bridgesdk.ErrorItem{{Code: "internal_error", Description: "boom"}},
			})
		}))
		t.Cleanup(bridge.Close)

		delivery, deliveryServer := newDeliveryStub(t, nil)

		session := bridgesdk.NewSession(bridgesdk.NewSDKClient(bridge.URL, "site1"))
		media := bridgesdk.NewMediaClient(session, deliveryServer.URL)

		_, err := media.GetMediaByID(context.Background(), "abc")
		require.ErrorIs(t, err, bridgesdk.ErrNoPassport)
		require.Zero(t, delivery.calls.Load())
	})

	t.Run("empty passport in the pair is treated as no passport", func(t *testing.T) {
		bridge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(bridgesdk.PassportResponse{RefreshToken: "r"})
		}))
		t.Cleanup(bridge.Close)

		delivery, deliveryServer := newDeliveryStub(t, nil)

		session := bridgesdk.NewSession(bridgesdk.NewSDKClient(bridge.URL, "site1"))
		media := bridgesdk.NewMediaClient(session, deliveryServer.URL)

		_, err := media.GetMediaByID(context.Background(), "abc")
		require.ErrorIs(t, err, bridgesdk.ErrNoPassport)
		require.Zero(t, delivery.calls.Load())
	})
}
