package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umuturukk/de-propulsion-v2.0/internal/analysis"
	"github.com/umuturukk/de-propulsion-v2.0/internal/api/models"
	"github.com/umuturukk/de-propulsion-v2.0/internal/config"
	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/sweep"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SweepHandler runs sweeps and fleet comparisons.
type SweepHandler struct {
	b *Backend
}

func NewSweepHandler(b *Backend) *SweepHandler {
	return &SweepHandler{b: b}
}

// RunSweep handles POST /api/v1/sweep
func (h *SweepHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}

	params, err := h.b.scenario(req.ScenarioOverrides)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidConfig, err)
		return
	}
	engine, err := h.b.engineFor(req.CurveOverrides)
	if err != nil {
		respondCurveError(c, err)
		return
	}

	start := time.Now()
	res, err := engine.Run(c.Request.Context(), params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.CodeSweepFailed, err)
		return
	}
	h.b.observeSweep(len(res.Ledger), time.Since(start))

	run := h.b.runs.Put(params, res)
	zap.S().Named("sweep_handler").Infow("sweep stored",
		"id", run.ID,
		"fleet", params.Fleet.Label(),
		"samples", len(res.Ledger))

	resp := models.SweepResponse{
		ID:        run.ID.String(),
		CreatedAt: run.CreatedAt,
		Summary:   analysis.Summarize(res),
	}
	if req.IncludeLedger {
		resp.Ledger = res.Ledger
	}
	c.JSON(http.StatusOK, resp)
}

// GetLedger handles GET /api/v1/sweep/:id/ledger
func (h *SweepHandler) GetLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, fmt.Errorf("invalid run id: %w", err))
		return
	}
	var req models.LedgerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}

	run, ok := h.b.runs.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, models.CodeRunNotFound,
			fmt.Errorf("sweep run %s not found or expired", id))
		return
	}

	var buf bytes.Buffer
	switch strings.ToLower(req.Format) {
	case "", "json":
		c.JSON(http.StatusOK, models.LedgerResponse{
			ID:        run.ID.String(),
			CreatedAt: run.CreatedAt,
			Fleet:     run.Params.Fleet.Label(),
			Ledger:    run.Result.Ledger,
		})
	case "csv":
		if err := sweep.EncodeLedgerCSV(&buf, run.Result.Ledger); err != nil {
			respondError(c, http.StatusInternalServerError, models.CodeExportFailed, err)
			return
		}
		attach(c, "ledger-"+id.String()+".csv", "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := sweep.EncodeLedgerXLSX(&buf, run.Result); err != nil {
			respondError(c, http.StatusInternalServerError, models.CodeExportFailed, err)
			return
		}
		attach(c, "ledger-"+id.String()+".xlsx", xlsxContentType, buf.Bytes())
	default:
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest,
			fmt.Errorf("unknown format %q (want json, csv or xlsx)", req.Format))
	}
}

// CompareFleets handles POST /api/v1/compare
func (h *SweepHandler) CompareFleets(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}

	base, err := h.b.scenario(req.Base)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidConfig, err)
		return
	}

	fleets := make([]model.Fleet, 0, len(req.Variations))
	names := make(map[model.Fleet]string, len(req.Variations))
	for i, v := range req.Variations {
		f := config.MergeFleet(base.Fleet, v.Fleet)
		if err := f.Validate(); err != nil {
			respondError(c, http.StatusBadRequest, models.CodeInvalidConfig, fmt.Errorf("variations[%d]: %w", i, err))
			return
		}
		if _, seen := names[f]; !seen {
			names[f] = v.Name
			if v.Name == "" {
				names[f] = f.Label()
			}
		}
		fleets = append(fleets, f)
	}

	engine, err := h.b.engineFor(req.Base.CurveOverrides)
	if err != nil {
		respondCurveError(c, err)
		return
	}

	start := time.Now()
	comparisons, err := analysis.CompareFleets(c.Request.Context(), engine, base, fleets)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.CodeSweepFailed, err)
		return
	}

	resp := models.CompareResponse{Comparison: make([]models.ComparisonResult, 0, len(comparisons))}
	samples := 0
	for i, cmp := range comparisons {
		samples += cmp.Summary.Transit.Samples + cmp.Summary.Maneuver.Samples
		resp.Comparison = append(resp.Comparison, models.ComparisonResult{
			Rank:    i + 1,
			Name:    names[cmp.Fleet],
			Fleet:   cmp.Fleet,
			Summary: cmp.Summary,
		})
	}
	h.b.observeSweep(samples, time.Since(start))
	c.JSON(http.StatusOK, resp)
}

func attach(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
