package model

// Location 緯度経度を表す基本的な型（WGS84、度単位）
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToiletStatus トイレの稼働状態
const (
	StatusAvailable   = "available"
	StatusBusy        = "busy"
	StatusMaintenance = "maintenance"
)

// Toilet 公衆トイレ1件を表すモデル
type Toilet struct {
	ID           string   `json:"id" db:"id"`                      // ユニークなトイレID（作成時に付与、不変）
	Name         string   `json:"name" db:"name"`                  // トイレ名
	Area         string   `json:"area" db:"area"`                  // エリアタグ（地域名など）
	Location     Location `json:"location" db:"location"`          // 位置情報
	IsAccessible bool     `json:"isAccessible" db:"is_accessible"` // 車椅子で利用可能か
	Cleanliness  float64  `json:"cleanliness" db:"cleanliness"`    // 清潔度 [0,1]
	Busyness     float64  `json:"busyness" db:"busyness"`          // 混雑度 [0,1]
	Amenities    []string `json:"amenities" db:"amenities"`        // 設備タグ（重複なし）
	Status       string   `json:"status" db:"status"`              // available | busy | maintenance
}

// ToLocation トイレの位置情報を返す
func (t *Toilet) ToLocation() Location {
	return t.Location
}

// HasAmenity 指定された設備タグを持つかチェック
func (t *Toilet) HasAmenity(amenity string) bool {
	for _, a := range t.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}

// Normalize 清潔度・混雑度を[0,1]に収め、設備タグの重複を取り除く
func (t *Toilet) Normalize() {
	t.Cleanliness = clamp01(t.Cleanliness)
	t.Busyness = clamp01(t.Busyness)

	seen := make(map[string]struct{}, len(t.Amenities))
	var amenities []string
	for _, a := range t.Amenities {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		amenities = append(amenities, a)
	}
	t.Amenities = amenities
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BoundingBox 緯度経度の軸平行矩形（境界ボックス事前フィルタ用）
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Contains 指定座標が境界ボックス内にあるかチェック
func (b *BoundingBox) Contains(loc Location) bool {
	return loc.Latitude >= b.MinLat && loc.Latitude <= b.MaxLat &&
		loc.Longitude >= b.MinLng && loc.Longitude <= b.MaxLng
}

// GeoQuery 中心座標と半径による地理検索クエリ
type GeoQuery struct {
	Center       Location `json:"center"`
	RadiusMeters float64  `json:"radius_meters"`
}
