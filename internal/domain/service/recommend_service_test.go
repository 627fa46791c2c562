package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ToiletFinder-App/internal/domain/model"
)

func ratingPtr(r float64) *float64 {
	return &r
}

func TestRecommendService_ScoreToilet(t *testing.T) {
	service := NewRecommendService()

	t.Run("全シグナル一致でスコアは1.0にクランプされる", func(t *testing.T) {
		// 0.5 + 0.2(アクセス) + 0.2(清潔) + 0.1(設備1件) + 0.2(エリア) = 1.2 → 1.0
		toilet := &model.Toilet{
			ID:           "t1",
			Area:         "downtown",
			IsAccessible: true,
			Cleanliness:  0.8,
			Busyness:     0.3,
			Amenities:    []string{"soap", "paper"},
		}
		prefs := model.UserPreferences{
			Accessibility:      true,
			Cleanliness:        3,
			Amenities:          []string{"soap"},
			PreferredLocations: []string{"downtown"},
		}

		result := service.ScoreToilet(toilet, prefs, nil)

		assert.Equal(t, 1.0, result.Score)
		assert.Len(t, result.Reasons, 4)
		assert.Equal(t, 1.0, result.AccessibilityScore)
		assert.Equal(t, 0.8, result.CleanlinessScore)
		assert.Equal(t, 0.3, result.BusynessScore)
	})

	t.Run("設備はタグごとに加算される", func(t *testing.T) {
		toilet := &model.Toilet{
			ID:          "t1",
			Cleanliness: 0.1,
			Amenities:   []string{"soap", "paper", "hand_dryer"},
		}
		prefs := model.UserPreferences{
			Cleanliness: 5, // 0.1 < 1.0 なので清潔ボーナスなし
			Amenities:   []string{"soap", "paper", "hand_dryer"},
		}

		result := service.ScoreToilet(toilet, prefs, nil)

		// 0.5 + 0.1*3 = 0.8
		assert.InDelta(t, 0.8, result.Score, 1e-9)
		assert.Len(t, result.Reasons, 1)
	})

	t.Run("利用履歴は該当トイレの平均評価で加算される", func(t *testing.T) {
		toilet := &model.Toilet{ID: "t1", Cleanliness: 0.1}
		prefs := model.UserPreferences{Cleanliness: 5}
		history := []model.UserHistory{
			{UserID: "u1", ToiletID: "t1", Timestamp: time.Now(), Rating: ratingPtr(4), Visited: true},
			{UserID: "u1", ToiletID: "t1", Timestamp: time.Now(), Rating: ratingPtr(2), Visited: true},
			{UserID: "u1", ToiletID: "other", Timestamp: time.Now(), Rating: ratingPtr(5), Visited: true},
			{UserID: "u1", ToiletID: "t1", Timestamp: time.Now(), Visited: true}, // 評価なしは無視
		}

		result := service.ScoreToilet(toilet, prefs, history)

		// 0.5 + 平均(4,2)=3 * 0.1 = 0.8
		assert.InDelta(t, 0.8, result.Score, 1e-9)
		assert.Contains(t, result.Reasons, "過去の利用経験に基づく")
	})

	t.Run("履歴のないユーザーに履歴ボーナスは付かない", func(t *testing.T) {
		toilet := &model.Toilet{ID: "t1", Cleanliness: 0.1}
		prefs := model.UserPreferences{Cleanliness: 5}

		result := service.ScoreToilet(toilet, prefs, nil)

		assert.InDelta(t, 0.5, result.Score, 1e-9)
		assert.NotContains(t, result.Reasons, "過去の利用経験に基づく")
		assert.Empty(t, result.Reasons)
	})

	t.Run("設定が空でもエラーにならずベーススコアに清潔ボーナスのみ", func(t *testing.T) {
		toilet := &model.Toilet{ID: "t1", Cleanliness: 0.5}

		result := service.ScoreToilet(toilet, model.UserPreferences{}, nil)

		// 清潔度0.5 >= 0/5 なので清潔ボーナスのみ: 0.5 + 0.2 = 0.7
		assert.InDelta(t, 0.7, result.Score, 1e-9)
	})

	t.Run("reasonsはシグナルの評価順を保つ", func(t *testing.T) {
		toilet := &model.Toilet{
			ID:           "t1",
			Area:         "downtown",
			IsAccessible: true,
			Cleanliness:  0.8,
			Amenities:    []string{"soap", "paper"},
		}
		prefs := model.UserPreferences{
			Accessibility:      true,
			Cleanliness:        3,
			Amenities:          []string{"soap"},
			PreferredLocations: []string{"downtown"},
		}

		result := service.ScoreToilet(toilet, prefs, nil)

		assert.Equal(t, []string{
			"車椅子で利用可能",
			"清潔さが期待を満たしています",
			"希望する設備あり: soap",
			"よく利用するエリア内",
		}, result.Reasons)
	})
}
