package service

import (
	"fmt"
	"math"
	"strings"

	"ToiletFinder-App/internal/domain/model"
)

// 類似度スコアリングの重み。推薦スコアと違い、設備の一致はタグ数に関わらず一律加算
const (
	sharedAmenitiesWeight      = 0.2
	similarCleanlinessWeight   = 0.2
	similarAccessibilityWeight = 0.1
	sameAreaWeight             = 0.2
	cleanlinessTolerance       = 0.2
)

// SimilarityService は基準トイレに対する候補トイレの類似度スコアを計算する
// （ユーザーに依存しない「似ているトイレ」検索用）
type SimilarityService struct{}

// NewSimilarityService は新しいSimilarityServiceインスタンスを作成する
func NewSimilarityService() *SimilarityService {
	return &SimilarityService{}
}

// ScoreSimilarity は候補トイレと基準トイレの類似度スコアを計算する
func (s *SimilarityService) ScoreSimilarity(candidate, reference *model.Toilet) model.Recommendation {
	var reasons []string
	score := baseScore

	// 1. 共通の設備（タグ数に関わらず一律加算）
	var common []string
	for _, amenity := range candidate.Amenities {
		if reference.HasAmenity(amenity) {
			common = append(common, amenity)
		}
	}
	if len(common) > 0 {
		score += sharedAmenitiesWeight
		reasons = append(reasons, fmt.Sprintf("同じ設備あり: %s", strings.Join(common, ", ")))
	}

	// 2. 清潔度の近さ
	if math.Abs(candidate.Cleanliness-reference.Cleanliness) < cleanlinessTolerance {
		score += similarCleanlinessWeight
		reasons = append(reasons, "清潔度が近い")
	}

	// 3. アクセシビリティの一致
	if candidate.IsAccessible == reference.IsAccessible {
		score += similarAccessibilityWeight
		reasons = append(reasons, "アクセシビリティが同じ")
	}

	// 4. 同じエリア
	if candidate.Area == reference.Area {
		score += sameAreaWeight
		reasons = append(reasons, "同じエリア")
	}

	return model.Recommendation{
		ToiletID:           candidate.ID,
		Score:              clampScore(score),
		Reasons:            reasons,
		AccessibilityScore: accessibilityScore(candidate),
		CleanlinessScore:   candidate.Cleanliness,
		BusynessScore:      candidate.Busyness,
	}
}
