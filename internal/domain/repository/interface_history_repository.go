package repository

import (
	"context"

	"ToiletFinder-App/internal/domain/model"
)

// UserHistoryRepository ユーザーの利用履歴へのアクセスを抽象化するインターフェース
type UserHistoryRepository interface {
	// GetRecentByUser は新しい順にlimit件までの利用履歴を返す
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]model.UserHistory, error)
}
