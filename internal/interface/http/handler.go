package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

// HeaderRecommendationSource reports which pipeline branch produced the plan.
const HeaderRecommendationSource = "X-Recommendation-Source"

// Handler wires the HTTP transport to the outfit service.
type Handler struct {
	outfitSvc outfit.Service
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(outfitSvc outfit.Service, logger *slog.Logger) *Handler {
	return &Handler{
		outfitSvc: outfitSvc,
		logger:    logger.With("component", "http.handler"),
	}
}

// RecommendOutfit serves GET /api/ai.
func (h *Handler) RecommendOutfit(c *gin.Context) {
	query := outfit.ParseQuery(c.Request.URL.Query())

	result, err := h.outfitSvc.Recommend(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, fromDomainError(err, "recommend_failed"))
		return
	}

	body, err := outfit.Encode(result.Plan)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "encode_failed", errMessage(err), err))
		return
	}

	c.Header(HeaderRecommendationSource, string(result.Source))
	c.Data(http.StatusOK, outfit.ContentType, body)
}

// Stats serves GET /api/ai/stats.
func (h *Handler) Stats(c *gin.Context) {
	counts, err := h.outfitSvc.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "stats_failed"))
		return
	}
	if counts == nil {
		counts = []outfit.SourceCount{}
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
