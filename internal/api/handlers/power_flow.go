package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umuturukk/de-propulsion-v2.0/internal/api/models"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
)

// PowerFlowHandler breaks a shaft power down through the DE chain.
type PowerFlowHandler struct {
	b *Backend
}

func NewPowerFlowHandler(b *Backend) *PowerFlowHandler {
	return &PowerFlowHandler{b: b}
}

// PowerFlow handles POST /api/v1/power-flow
func (h *PowerFlowHandler) PowerFlow(c *gin.Context) {
	var req models.PowerFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}

	eff := h.b.cfg.Efficiencies
	if req.Efficiencies != nil {
		eff = *req.Efficiencies
	}
	flow, err := propulsion.PowerFlow(req.ShaftPowerKW, eff)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}

	resp := models.PowerFlowResponse{
		Flow:          flow,
		TotalLossesKW: flow.Losses.TotalKW(),
		Efficiencies:  eff,
	}
	aux := h.b.cfg.Vessel.AuxPowerKW
	if resp.TransitDemandKW, err = eff.DemandKW(model.ModeTransit, req.ShaftPowerKW, aux); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}
	if resp.ManeuverDemandKW, err = eff.DemandKW(model.ModeManeuver, req.ShaftPowerKW, aux); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
