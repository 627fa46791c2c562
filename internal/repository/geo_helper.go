package repository

import (
	"fmt"

	"github.com/paulmach/orb"

	"ToiletFinder-App/internal/domain/model"
)

// GeoPoint GeoJSON POINT型のJSON表現（PostgreSQLのjsonb位置カラムと共通）
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
}

// GeoPointToLocation GeoJSON POINT を model.Location に変換。
// 座標が欠けているドキュメントはここで弾く
func GeoPointToLocation(geoPoint *GeoPoint) (model.Location, error) {
	if geoPoint == nil || len(geoPoint.Coordinates) < 2 {
		return model.Location{}, fmt.Errorf("位置情報の座標が不足しています: %w", model.ErrInvalidCoordinates)
	}

	point := orb.Point{geoPoint.Coordinates[0], geoPoint.Coordinates[1]}

	return model.Location{
		Latitude:  point.Lat(),
		Longitude: point.Lon(),
	}, nil
}

// BoundingBoxToBound model.BoundingBox をorb.Boundに変換し、SQLの事前フィルタが
// 境界上のレコードを取りこぼさないよう少し余裕を持たせる（約100m程度）
func BoundingBoxToBound(box model.BoundingBox) orb.Bound {
	bound := orb.Bound{
		Min: orb.Point{box.MinLng, box.MinLat},
		Max: orb.Point{box.MaxLng, box.MaxLat},
	}

	padding := 0.001 // 約111m
	return bound.Pad(padding)
}
