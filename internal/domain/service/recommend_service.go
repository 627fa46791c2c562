package service

import (
	"fmt"
	"strings"

	"ToiletFinder-App/internal/domain/model"
)

// スコアリングの重み。基礎スコアに各シグナルの重みを加算し、最後に[0,1]へクランプする
const (
	baseScore           = 0.5
	accessibilityWeight = 0.2
	cleanlinessWeight   = 0.2
	amenityWeightPerTag = 0.1 // 一致タグ1つごとに加算（上限なし、最終クランプのみ）
	historyRatingWeight = 0.1 // 平均評価に乗じる係数
	preferredAreaWeight = 0.2
	cleanlinessScaleMax = 5.0 // ユーザー設定の清潔度は1〜5段階
)

// RecommendService はユーザー設定・利用履歴に基づいてトイレ1件の総合スコアを計算する
type RecommendService struct{}

// NewRecommendService は新しいRecommendServiceインスタンスを作成する
func NewRecommendService() *RecommendService {
	return &RecommendService{}
}

// ScoreToilet はトイレ1件のスコアを計算する。どの入力の組み合わせでも必ず有効な
// スコアを返す（失敗しない）。reasonsはシグナルの評価順を保つ
func (s *RecommendService) ScoreToilet(toilet *model.Toilet, prefs model.UserPreferences, history []model.UserHistory) model.Recommendation {
	var reasons []string
	score := baseScore

	// 1. アクセシビリティの確認
	if prefs.Accessibility && toilet.IsAccessible {
		score += accessibilityWeight
		reasons = append(reasons, "車椅子で利用可能")
	}

	// 2. 清潔度の確認（ユーザー設定の5段階を[0,1]に変換して比較）
	if toilet.Cleanliness >= float64(prefs.Cleanliness)/cleanlinessScaleMax {
		score += cleanlinessWeight
		reasons = append(reasons, "清潔さが期待を満たしています")
	}

	// 3. 設備の確認（一致タグごとに加算）
	var matching []string
	for _, amenity := range prefs.Amenities {
		if toilet.HasAmenity(amenity) {
			matching = append(matching, amenity)
		}
	}
	if len(matching) > 0 {
		score += amenityWeightPerTag * float64(len(matching))
		reasons = append(reasons, fmt.Sprintf("希望する設備あり: %s", strings.Join(matching, ", ")))
	}

	// 4. 利用履歴の確認（評価付き履歴の平均に係数を乗じる）
	var ratings []float64
	for _, h := range history {
		if h.ToiletID == toilet.ID && h.Rating != nil {
			ratings = append(ratings, *h.Rating)
		}
	}
	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r
		}
		avgRating := sum / float64(len(ratings))
		score += avgRating * historyRatingWeight
		reasons = append(reasons, "過去の利用経験に基づく")
	}

	// 5. 希望エリアの確認
	if prefs.HasPreferredLocation(toilet.Area) {
		score += preferredAreaWeight
		reasons = append(reasons, "よく利用するエリア内")
	}

	return model.Recommendation{
		ToiletID:           toilet.ID,
		Score:              clampScore(score),
		Reasons:            reasons,
		AccessibilityScore: accessibilityScore(toilet),
		CleanlinessScore:   toilet.Cleanliness,
		BusynessScore:      toilet.Busyness,
	}
}

func accessibilityScore(toilet *model.Toilet) float64 {
	if toilet.IsAccessible {
		return 1
	}
	return 0
}

// clampScore はスコアを[0,1]に正規化する
func clampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
