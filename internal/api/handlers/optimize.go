package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umuturukk/de-propulsion-v2.0/internal/api/models"
	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
)

const defaultDurationH = 1.0

// OptimizeHandler answers single optimizer queries.
type OptimizeHandler struct {
	b *Backend
}

func NewOptimizeHandler(b *Backend) *OptimizeHandler {
	return &OptimizeHandler{b: b}
}

// Optimize handles POST /api/v1/optimize
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}

	required := *req.RequiredPowerKW
	if required < 0 || math.IsNaN(required) || math.IsInf(required, 0) {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest,
			errors.New("required_power_kw must be a finite value >= 0"))
		return
	}
	duration := defaultDurationH
	if req.DurationH != nil {
		duration = *req.DurationH
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, errors.New("duration_h must be a finite value > 0"))
		return
	}

	fleet := h.b.cfg.Fleet
	if req.Fleet != nil {
		fleet = *req.Fleet
	}
	if err := fleet.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidConfig, err)
		return
	}

	sel, err := h.b.selectorFor(req.CurveOverrides)
	if err != nil {
		respondCurveError(c, err)
		return
	}

	res := sel.SelectBest(combination.Request{
		RequiredKW: required,
		Fleet:      fleet,
		DurationH:  duration,
	})
	if !req.IncludeCandidates {
		res.Candidates = nil
	}

	c.JSON(http.StatusOK, models.OptimizeResponse{
		RequiredPowerKW: required,
		Fleet:           fleet.Label(),
		Feasible:        res.Feasible(),
		Result:          res,
	})
}
