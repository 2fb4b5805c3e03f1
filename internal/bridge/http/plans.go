package http

import (
	"net/http"

	"github.com/nimbusott/access-bridge/internal/bridge/service"
	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
	"github.com/nimbusott/access-bridge/pkg/httpx"
)

// PlansHandler serves the available-plans catalogue endpoint.
type PlansHandler struct {
	PlansService *service.PlansService
}

// HandleList godoc
//
//	@Summary		List available site plans
//	@Description	Lists the plans the site offers for purchase by viewers.
//	@Tags			Plans
//	@Produce		json
//	@Param			site_id	path		string					true	"Site identifier"
//	@Success		200		{object}	bridgesdk.PlansResponse	"plans"
//	@Failure		400		{object}	bridgesdk.ErrorResponse	"errors"
//	@Failure		500		{object}	bridgesdk.ErrorResponse	"errors"
//	@Router			/v2/sites/{site_id}/plans [get].
func (h *PlansHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	plans, err := h.PlansService.GetAvailablePlans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := bridgesdk.PlansResponse{
		Plans: make([]bridgesdk.Plan, 0, len(plans)),
	}
	for _, plan := range plans {
		response.Plans = append(response.Plans, bridgesdk.Plan{ID: plan.ID, Exp: plan.Exp})
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
