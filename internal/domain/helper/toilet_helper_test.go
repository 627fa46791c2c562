package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ToiletFinder-App/internal/domain/model"
)

func makeToilet(id string, lat, lng float64) *model.Toilet {
	return &model.Toilet{
		ID:       id,
		Location: model.Location{Latitude: lat, Longitude: lng},
	}
}

func TestSortByDistance(t *testing.T) {
	t.Run("距離の昇順にソートされる", func(t *testing.T) {
		far := makeToilet("far", 48.8666, 2.3522)
		near := makeToilet("near", 48.8570, 2.3522)
		same := makeToilet("same", 48.8566, 2.3522)

		sorted := SortByDistance([]*model.Toilet{far, near, same}, parisCenter)

		assert.Equal(t, []string{"same", "near", "far"}, toiletIDs(sorted))
	})

	t.Run("同距離のタイは元の順序を保つ", func(t *testing.T) {
		p1 := makeToilet("P1", 48.8566, 2.3522)
		p2 := makeToilet("P2", 48.8566, 2.3522)
		p3 := makeToilet("P3", 48.85665, 2.3522) // 約5m北

		sorted := SortByDistance([]*model.Toilet{p1, p2, p3}, parisCenter)

		assert.Equal(t, []string{"P1", "P2", "P3"}, toiletIDs(sorted))
	})

	t.Run("入力スライスは変更されない", func(t *testing.T) {
		far := makeToilet("far", 48.8666, 2.3522)
		near := makeToilet("near", 48.8570, 2.3522)
		input := []*model.Toilet{far, near}

		SortByDistance(input, parisCenter)

		assert.Equal(t, []string{"far", "near"}, toiletIDs(input))
	})
}

func TestFilterWithinRadius(t *testing.T) {
	t.Run("半径500mでは約1113m先のトイレは除外される", func(t *testing.T) {
		a := makeToilet("A", 48.8566, 2.3522) // 0m
		b := makeToilet("B", 48.8666, 2.3522) // 約1113m北

		filtered := FilterWithinRadius([]*model.Toilet{a, b}, parisCenter, 500)

		assert.Equal(t, []string{"A"}, toiletIDs(filtered))
	})

	t.Run("空の入力・空の結果はエラーではない", func(t *testing.T) {
		assert.Empty(t, FilterWithinRadius(nil, parisCenter, 500))

		b := makeToilet("B", 48.8666, 2.3522)
		assert.Empty(t, FilterWithinRadius([]*model.Toilet{b}, parisCenter, 100))
	})
}

func TestCandidatesInBoundingBox(t *testing.T) {
	t.Run("境界ボックスと正確な距離の2段階で絞り込む", func(t *testing.T) {
		inside := makeToilet("inside", 48.8570, 2.3522)
		outside := makeToilet("outside", 48.9000, 2.3522)

		candidates, err := CandidatesInBoundingBox([]*model.Toilet{inside, outside}, model.GeoQuery{
			Center:       parisCenter,
			RadiusMeters: 1000,
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"inside"}, toiletIDs(candidates))
	})

	t.Run("不正な中心座標はエラー", func(t *testing.T) {
		_, err := CandidatesInBoundingBox(nil, model.GeoQuery{
			Center:       model.Location{Latitude: 91, Longitude: 0},
			RadiusMeters: 1000,
		})
		assert.ErrorIs(t, err, model.ErrInvalidCoordinates)
	})
}

func TestFilterByAmenities(t *testing.T) {
	soapOnly := &model.Toilet{ID: "soap", Amenities: []string{"soap"}}
	full := &model.Toilet{ID: "full", Amenities: []string{"soap", "paper", "hand_dryer"}}
	toilets := []*model.Toilet{soapOnly, full}

	t.Run("指定された全タグを持つもののみ残る", func(t *testing.T) {
		filtered := FilterByAmenities(toilets, []string{"soap", "paper"})
		assert.Equal(t, []string{"full"}, toiletIDs(filtered))
	})

	t.Run("タグ指定がなければ全件返す", func(t *testing.T) {
		assert.Len(t, FilterByAmenities(toilets, nil), 2)
	})
}

func TestRemoveToilet(t *testing.T) {
	a := makeToilet("A", 0, 0)
	b := makeToilet("B", 0, 0)

	result := RemoveToilet([]*model.Toilet{a, b}, "A")

	assert.Equal(t, []string{"B"}, toiletIDs(result))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "875 m", FormatDistance(875.2))
	assert.Equal(t, "0 m", FormatDistance(0))
	assert.Equal(t, "1.2 km", FormatDistance(1234))
	assert.Equal(t, "10.0 km", FormatDistance(10000))
}

func toiletIDs(toilets []*model.Toilet) []string {
	ids := make([]string, 0, len(toilets))
	for _, t := range toilets {
		ids = append(ids, t.ID)
	}
	return ids
}
