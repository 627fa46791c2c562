package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/usecase"
)

// RecommendationsHandler 推薦APIのHTTPハンドラー
type RecommendationsHandler struct {
	recommendationUseCase usecase.RecommendationUseCase
}

// NewRecommendationsHandler RecommendationsHandlerの新しいインスタンスを作成
func NewRecommendationsHandler(uc usecase.RecommendationUseCase) *RecommendationsHandler {
	return &RecommendationsHandler{
		recommendationUseCase: uc,
	}
}

// GetRecommendations POST /api/recommendations - パーソナライズ推薦の取得
func (h *RecommendationsHandler) GetRecommendations(c *gin.Context) {
	var req model.RecommendationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	response, err := h.recommendationUseCase.GetPersonalizedRecommendations(c.Request.Context(), &req)
	if err != nil {
		respondRecommendationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSimilarToilets GET /api/toilets/:id/similar - 類似トイレの取得
func (h *RecommendationsHandler) GetSimilarToilets(c *gin.Context) {
	toiletID := c.Param("id")
	if toiletID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "Toilet ID is required",
		})
		return
	}

	response, err := h.recommendationUseCase.GetSimilarToilets(c.Request.Context(), toiletID)
	if err != nil {
		respondRecommendationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// respondRecommendationError エラー種別をHTTPステータスに変換する。
// 上流取得の失敗は「結果なし」と区別できるようリトライ可能なエラーとして返す
func respondRecommendationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCoordinates):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_coordinates",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrToiletNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "toilet_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "upstream_unavailable",
			"message":   err.Error(),
			"retryable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
