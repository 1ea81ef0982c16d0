package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umuturukk/de-propulsion-v2.0/internal/api/models"
	"github.com/umuturukk/de-propulsion-v2.0/internal/data"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sfoc"
)

// Plot defaults: the whole operating envelope up to the overload ceiling.
const (
	samplesFromPct  = 0
	samplesToPct    = 110
	samplesPoints   = 200
	maxSamplePoints = 2000
)

// CurvesHandler serves SFOC curves and their fitted samples.
type CurvesHandler struct {
	b *Backend
}

func NewCurvesHandler(b *Backend) *CurvesHandler {
	return &CurvesHandler{b: b}
}

// ListCurves handles GET /api/v1/curves
func (h *CurvesHandler) ListCurves(c *gin.Context) {
	presets, err := data.LoadCurvePresets(h.b.opts.CurveDir)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.CodeInternal, err)
		return
	}

	resp := models.CurvesResponse{
		Builtin: curveInfos(h.b.cfg.CurveSet()),
		Presets: make([]models.CurvePresetInfo, 0, len(presets)),
	}
	for _, p := range presets {
		resp.Presets = append(resp.Presets, models.CurvePresetInfo{
			Name:        p.Name,
			Description: p.Description,
			Curves:      curveInfos(p.Curves),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// CurveSamples handles GET /api/v1/curves/:key/samples
func (h *CurvesHandler) CurveSamples(c *gin.Context) {
	key := model.CurveKey(c.Param("key"))
	if !knownCurve(key) {
		respondError(c, http.StatusNotFound, models.CodeCurveNotFound, fmt.Errorf("%w: %q", errUnknownCurve, key))
		return
	}

	var req models.CurveSamplesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}
	if req.ToPct == 0 && req.FromPct == 0 {
		req.FromPct, req.ToPct = samplesFromPct, samplesToPct
	}
	if req.Points == 0 {
		req.Points = samplesPoints
	}
	if req.Points < 2 || req.Points > maxSamplePoints || req.ToPct <= req.FromPct {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest,
			errors.New("need 2 <= points <= 2000 and from_pct < to_pct"))
		return
	}

	set, _, err := h.b.curves(models.CurveOverrides{Preset: req.Preset})
	if err != nil {
		respondCurveError(c, err)
		return
	}
	curve := set[key]
	spline, err := sfoc.Fit(curve)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidCurve, fmt.Errorf("curve %s: %w", key, err))
		return
	}

	c.JSON(http.StatusOK, models.CurveSamplesResponse{
		Key:     key,
		Preset:  req.Preset,
		Degree:  spline.Degree(),
		Points:  curve,
		Samples: sfoc.Sample(spline, req.FromPct, req.ToPct, req.Points),
	})
}

func curveInfos(set model.CurveSet) []models.CurveInfo {
	out := make([]models.CurveInfo, 0, len(set))
	for _, key := range model.CurveKeys() {
		if c, ok := set[key]; ok {
			out = append(out, models.CurveInfo{Key: key, Points: c})
		}
	}
	return out
}
