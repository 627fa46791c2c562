package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ToiletFinder-App/internal/domain/helper"
	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
	"ToiletFinder-App/internal/domain/service"
)

// ToiletsHandler トイレ検索・状態予測のHTTPハンドラー
type ToiletsHandler struct {
	toiletsRepo       repository.ToiletsRepository
	predictionService *service.StatusPredictionService
}

// NewToiletsHandler ToiletsHandlerの新しいインスタンスを作成
func NewToiletsHandler(toiletsRepo repository.ToiletsRepository, predictionService *service.StatusPredictionService) *ToiletsHandler {
	return &ToiletsHandler{
		toiletsRepo:       toiletsRepo,
		predictionService: predictionService,
	}
}

// nearbyToilet 距離情報付きのトイレレスポンス
type nearbyToilet struct {
	*model.Toilet
	DistanceMeters  float64 `json:"distance_meters"`
	DistanceDisplay string  `json:"distance_display"`
}

// GetNearbyToilets GET /api/toilets/nearby - 近い順にソートされた周辺トイレ一覧
func (h *ToiletsHandler) GetNearbyToilets(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Invalid lat value",
		})
		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Invalid lng value",
		})
		return
	}

	radius := 2000.0
	if radiusParam := c.Query("radius"); radiusParam != "" {
		radius, err = strconv.ParseFloat(radiusParam, 64)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "Invalid radius value",
			})
			return
		}
	}

	origin := model.Location{Latitude: lat, Longitude: lng}
	if err := helper.ValidateLocation(origin); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_coordinates",
			"message": err.Error(),
		})
		return
	}

	toilets, err := h.toiletsRepo.FindNearby(c.Request.Context(), origin, radius)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "upstream_unavailable",
			"message":   "Failed to fetch nearby toilets: " + err.Error(),
			"retryable": true,
		})
		return
	}

	// 設備タグの絞り込み（カンマ区切り、指定された全タグを持つもののみ）
	if amenitiesParam := c.Query("amenities"); amenitiesParam != "" {
		toilets = helper.FilterByAmenities(toilets, strings.Split(amenitiesParam, ","))
	}

	sorted := helper.SortByDistance(toilets, origin)

	results := make([]nearbyToilet, 0, len(sorted))
	for _, t := range sorted {
		distance := helper.HaversineDistance(origin, t.Location)
		results = append(results, nearbyToilet{
			Toilet:          t,
			DistanceMeters:  distance,
			DistanceDisplay: helper.FormatDistance(distance),
		})
	}

	c.JSON(http.StatusOK, gin.H{"toilets": results})
}

// GetToiletPrediction GET /api/toilets/:id/prediction - トイレの状態予測
func (h *ToiletsHandler) GetToiletPrediction(c *gin.Context) {
	toiletID := c.Param("id")
	if toiletID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "Toilet ID is required",
		})
		return
	}

	prediction, err := h.predictionService.PredictStatus(c.Request.Context(), toiletID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "upstream_unavailable",
			"message":   "Failed to predict toilet status: " + err.Error(),
			"retryable": true,
		})
		return
	}

	c.JSON(http.StatusOK, prediction)
}
