package repository

import (
	"context"

	"ToiletFinder-App/internal/domain/model"
)

// ToiletsRepository トイレカタログへのアクセスを抽象化するインターフェース
type ToiletsRepository interface {
	GetByID(ctx context.Context, id string) (*model.Toilet, error)
	GetAll(ctx context.Context) ([]*model.Toilet, error)
	// FindNearby は指定座標から半径内のトイレを返す（境界ボックス事前フィルタ＋正確な距離の後段フィルタ済み）
	FindNearby(ctx context.Context, center model.Location, radiusMeters float64) ([]*model.Toilet, error)
}
