package helper

import (
	"fmt"
	"math"

	"ToiletFinder-App/internal/domain/model"
)

// earthRadiusMeters 地球半径（メートル）。距離計算は全てメートルで統一し、
// 表示用の変換はFormatDistanceでのみ行う
const earthRadiusMeters = 6371000.0

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ValidateLocation 座標が有効範囲内かチェックする。範囲外はErrInvalidCoordinates
// （スコア値と違い、座標は黙ってクランプしない）
func ValidateLocation(loc model.Location) error {
	// NaNは比較が全てfalseになり範囲チェックをすり抜けるため先に弾く
	if math.IsNaN(loc.Latitude) || math.IsNaN(loc.Longitude) {
		return fmt.Errorf("座標にNaNが含まれています: %w", model.ErrInvalidCoordinates)
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("緯度 %f: %w", loc.Latitude, model.ErrInvalidCoordinates)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("経度 %f: %w", loc.Longitude, model.ErrInvalidCoordinates)
	}
	return nil
}

// HaversineDistance は2地点間の大円距離を計算する (メートル)
func HaversineDistance(p1, p2 model.Location) float64 {
	lat1 := degToRad(p1.Latitude)
	lat2 := degToRad(p2.Latitude)
	dLat := degToRad(p2.Latitude - p1.Latitude)
	dLng := degToRad(p2.Longitude - p1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// NewBoundingBox 中心と半径から、半径内の全地点を必ず含む境界ボックスを計算する。
// 正確な円ではなく上位集合なので、呼び出し側はHaversineDistanceで後段フィルタすること。
// 経度の幅は子午線収束に合わせてcos(緯度)で補正する。極付近でcosが0に近づく場合は
// 補正が発散するため、経度は全範囲として扱う
func NewBoundingBox(center model.Location, radiusMeters float64) (model.BoundingBox, error) {
	if err := ValidateLocation(center); err != nil {
		return model.BoundingBox{}, err
	}

	lat := degToRad(center.Latitude)
	angularDistance := radiusMeters / earthRadiusMeters

	box := model.BoundingBox{
		MinLat: radToDeg(lat - angularDistance),
		MaxLat: radToDeg(lat + angularDistance),
	}
	if box.MinLat < -90 {
		box.MinLat = -90
	}
	if box.MaxLat > 90 {
		box.MaxLat = 90
	}

	const minCosLat = 1e-6
	cosLat := math.Cos(lat)
	if cosLat < minCosLat {
		// 極に近すぎて経度補正が意味を持たない
		box.MinLng = -180
		box.MaxLng = 180
		return box, nil
	}

	lngDelta := radToDeg(angularDistance / cosLat)
	box.MinLng = center.Longitude - lngDelta
	box.MaxLng = center.Longitude + lngDelta
	if box.MinLng < -180 {
		box.MinLng = -180
	}
	if box.MaxLng > 180 {
		box.MaxLng = 180
	}

	return box, nil
}
