package repository

import (
	"context"

	"ToiletFinder-App/internal/domain/model"
)

// StatusHistoryRepository トイレの状態履歴へのアクセスを抽象化するインターフェース
type StatusHistoryRepository interface {
	// GetRecentByToilet は新しい順にlimit件までの状態スナップショットを返す
	GetRecentByToilet(ctx context.Context, toiletID string, limit int) ([]model.StatusSnapshot, error)
}

// MaintenanceReportsRepository メンテナンス報告へのアクセスを抽象化するインターフェース
type MaintenanceReportsRepository interface {
	// GetRecentByToilet は新しい順にlimit件までのメンテナンス報告を返す
	GetRecentByToilet(ctx context.Context, toiletID string, limit int) ([]model.MaintenanceReport, error)
}
