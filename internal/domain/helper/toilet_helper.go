package helper

import (
	"fmt"
	"sort"

	"ToiletFinder-App/internal/domain/model"
)

// SortByDistance は基準座標からの距離でトイレスライスをソートした新しいスライスを返す。
// 入力は変更しない。同距離の場合は元の順序を保つ（安定ソート）
func SortByDistance(toilets []*model.Toilet, origin model.Location) []*model.Toilet {
	sorted := make([]*model.Toilet, len(toilets))
	copy(sorted, toilets)
	sort.SliceStable(sorted, func(i, j int) bool {
		distI := HaversineDistance(origin, sorted[i].Location)
		distJ := HaversineDistance(origin, sorted[j].Location)
		return distI < distJ
	})
	return sorted
}

// FilterWithinRadius は基準座標から指定半径内のトイレのみを抽出する。
// 空の入力・空の結果はエラーではない
func FilterWithinRadius(toilets []*model.Toilet, origin model.Location, radiusMeters float64) []*model.Toilet {
	var filtered []*model.Toilet
	for _, t := range toilets {
		if HaversineDistance(origin, t.Location) <= radiusMeters {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// CandidatesInBoundingBox は2段階フィルタで候補を絞り込む。
// まず安価な境界ボックス判定、次に正確な距離判定を行う（全件線形走査であり、
// 空間インデックスではない）
func CandidatesInBoundingBox(toilets []*model.Toilet, query model.GeoQuery) ([]*model.Toilet, error) {
	box, err := NewBoundingBox(query.Center, query.RadiusMeters)
	if err != nil {
		return nil, err
	}

	var candidates []*model.Toilet
	for _, t := range toilets {
		if !box.Contains(t.Location) {
			continue
		}
		if HaversineDistance(query.Center, t.Location) <= query.RadiusMeters {
			candidates = append(candidates, t)
		}
	}
	return candidates, nil
}

// FilterByAmenities は指定された全ての設備タグを持つトイレのみを抽出する。
// タグ指定がない場合は入力をそのまま返す
func FilterByAmenities(toilets []*model.Toilet, amenities []string) []*model.Toilet {
	if len(amenities) == 0 {
		return toilets
	}

	var filtered []*model.Toilet
	for _, t := range toilets {
		hasAll := true
		for _, a := range amenities {
			if !t.HasAmenity(a) {
				hasAll = false
				break
			}
		}
		if hasAll {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// RemoveToilet はスライスから特定のトイレを除外する
func RemoveToilet(toilets []*model.Toilet, targetID string) []*model.Toilet {
	var result []*model.Toilet
	for _, t := range toilets {
		if t.ID != targetID {
			result = append(result, t)
		}
	}
	return result
}

// FormatDistance はメートル単位の距離を表示用文字列に変換する
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(meters+0.5))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
