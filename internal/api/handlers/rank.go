package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umuturukk/de-propulsion-v2.0/internal/api/models"
)

// RankHandler handles unit-size ranking requests
type RankHandler struct {
	b *Backend
}

func NewRankHandler(b *Backend) *RankHandler {
	return &RankHandler{b: b}
}

// RankUnitSizes handles GET /api/v1/rank
func (h *RankHandler) RankUnitSizes(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err)
		return
	}

	params := h.b.cfg.RankParams()
	if req.FromKW != 0 {
		params.Ratings.FromKW = req.FromKW
	}
	if req.ToKW != 0 {
		params.Ratings.ToKW = req.ToKW
	}
	if req.StepKW != 0 {
		params.Ratings.StepKW = req.StepKW
	}
	if err := params.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidConfig, err)
		return
	}

	ranker, err := h.b.rankerFor(req.Preset)
	if err != nil {
		respondCurveError(c, err)
		return
	}
	ranks, err := ranker.Rank(params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.CodeRankFailed, err)
		return
	}

	resp := models.RankResponse{Rankings: make([]models.Ranking, 0, len(ranks))}
	for i, r := range ranks {
		resp.Rankings = append(resp.Rankings, models.Ranking{
			Rank:            i + 1,
			UnitSizeRank:    r,
			TotalDiffTonnes: r.TotalDiffTonnes(),
		})
	}
	c.JSON(http.StatusOK, resp)
}
