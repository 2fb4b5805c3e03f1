package bridgesdk_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/stretchr/testify/require"
)

func TestBridgeErrorIs(t *testing.T) {
	t.Parallel()

	t.Run("matches by code after WithDescription", func(t *testing.T) {
		err := bridgesdk.ErrForbidden.WithDescription("Invalid or expired refresh token.")
		require.ErrorIs(t, err, bridgesdk.ErrForbidden)
	})

	t.Run("different codes do not match", func(t *testing.T) {
		require.NotErrorIs(t, bridgesdk.ErrForbidden, bridgesdk.ErrUnauthorized)
	})

	t.Run("parameter helpers stay matchable", func(t *testing.T) {
		require.ErrorIs(t, bridgesdk.NewParameterMissing("refresh_token"), bridgesdk.ErrParameterMissing)
		require.ErrorIs(t, bridgesdk.NewParameterInvalid("site_id", ""), bridgesdk.ErrParameterInvalid)
	})
}

func TestNewParameterMissing(t *testing.T) {
	t.Parallel()

	err := bridgesdk.NewParameterMissing("refresh_token")
	require.Equal(t, http.StatusBadRequest, err.StatusCode)
	require.Equal(t, "parameter_missing", err.Code)
	require.Contains(t, err.Description, "refresh_token")
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	bridgesdk.ErrUnauthorized.WriteError(rec)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Cache-Control"), "no-store")

	var body bridgesdk.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	require.Equal(t, "unauthorized", body.Errors[0].Code)
	require.Equal(t, "Missing or invalid auth credentials.", body.Errors[0].Description)
}

func errorBody(code, description string) []byte {
	b, _ := json.Marshal(bridgesdk.ErrorResponse{
		Errors: []bridgesdk.ErrorItem{{Code: code, Description: description}},
	})
	return b
}

func response(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(string(body))),
	}
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("nil for 2xx", func(t *testing.T) {
		require.NoError(t, bridgesdk.ParseErrorResponse(response(http.StatusOK, nil), nil))
	})

	t.Run("translates known codes keeping the description", func(t *testing.T) {
		err := bridgesdk.ParseErrorResponse(
			response(http.StatusForbidden, nil),
			errorBody("forbidden", "Token has been revoked."),
		)
		require.ErrorIs(t, err, bridgesdk.ErrForbidden)

		var bridgeErr *bridgesdk.BridgeError
		require.ErrorAs(t, err, &bridgeErr)
		require.Equal(t, http.StatusForbidden, bridgeErr.StatusCode)
		require.Equal(t, "Token has been revoked.", bridgeErr.Description)
	})

	t.Run("unknown code falls back to bad_request", func(t *testing.T) {
		err := bridgesdk.ParseErrorResponse(
			response(http.StatusBadRequest, nil),
			errorBody("weird_upstream_code", "Something upstream-specific."),
		)
		require.ErrorIs(t, err, bridgesdk.ErrBadRequest)

		var bridgeErr *bridgesdk.BridgeError
		require.ErrorAs(t, err, &bridgeErr)
		require.Equal(t, "Something upstream-specific.", bridgeErr.Description)
	})

	t.Run("unparseable body maps by HTTP status", func(t *testing.T) {
		cases := []struct {
			status int
			want   *bridgesdk.BridgeError
		}{
			{http.StatusUnauthorized, bridgesdk.ErrUnauthorized},
			{http.StatusForbidden, bridgesdk.ErrForbidden},
			{http.StatusNotFound, bridgesdk.ErrNotFound},
			{http.StatusMethodNotAllowed, bridgesdk.ErrMethodNotAllowed},
			{http.StatusBadGateway, bridgesdk.ErrInternal},
			{http.StatusTeapot, bridgesdk.ErrBadRequest},
		}
		for _, tc := range cases {
			err := bridgesdk.ParseErrorResponse(response(tc.status, []byte("<html>upstream</html>")), []byte("<html>upstream</html>"))
			require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		}
	})

	t.Run("never returns a non-bridge error", func(t *testing.T) {
		err := bridgesdk.ParseErrorResponse(response(http.StatusInternalServerError, nil), nil)
		var bridgeErr *bridgesdk.BridgeError
		require.True(t, errors.As(err, &bridgeErr))
	})
}
