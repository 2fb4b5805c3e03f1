package http

import (
	"encoding/json"
	"net/http"

	"github.com/nimbusott/access-bridge/internal/bridge/service"
	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/nimbusott/access-bridge/pkg/httpx"
)

// AccessHandler serves the passport generate and refresh endpoints.
type AccessHandler struct {
	PassportService *service.PassportService
}

// HandleGenerate godoc
//
//	@Summary		Generate passport access tokens
//	@Description	Resolves the viewer (anonymous without an Authorization header) and their
//	@Description	entitled plans, then issues a signed passport and refresh token pair.
//	@Tags			Access
//	@Produce		json
//	@Param			site_id			path		string						true	"Site identifier"
//	@Param			Authorization	header		string						false	"Viewer bearer credential"
//	@Success		200				{object}	bridgesdk.PassportResponse	"passport, refresh_token"
//	@Failure		400				{object}	bridgesdk.ErrorResponse		"errors"
//	@Failure		401				{object}	bridgesdk.ErrorResponse		"errors"
//	@Failure		500				{object}	bridgesdk.ErrorResponse		"errors"
//	@Router			/v2/sites/{site_id}/access/generate [put].
func (h *AccessHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	authorization := r.Header.Get("Authorization")

	tokens, err := h.PassportService.Generate(r.Context(), authorization)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// HandleRefresh godoc
//
//	@Summary		Refresh passport access tokens
//	@Description	Redeems a refresh token for a new passport and refresh token pair,
//	@Description	invalidating the old pair upstream.
//	@Tags			Access
//	@Accept			json
//	@Produce		json
//	@Param			site_id	path		string						true	"Site identifier"
//	@Param			body	body		refreshRequest				true	"Refresh token"
//	@Success		200		{object}	bridgesdk.PassportResponse	"passport, refresh_token"
//	@Failure		400		{object}	bridgesdk.ErrorResponse		"errors"
//	@Failure		403		{object}	bridgesdk.ErrorResponse		"errors"
//	@Failure		500		{object}	bridgesdk.ErrorResponse		"errors"
//	@Router			/v2/sites/{site_id}/access/refresh [put].
func (h *AccessHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			bridgesdk.NewParameterInvalid("body", "").WriteError(w)
			return
		}
	}

	tokens, err := h.PassportService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokens)
}
