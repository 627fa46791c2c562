package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
)

// FirestoreHistoryRepository FirestoreのuserHistoryコレクションを使用した利用履歴リポジトリ
type FirestoreHistoryRepository struct {
	client *firestore.Client
}

// NewFirestoreHistoryRepository 新しいFirestoreHistoryRepositoryインスタンスを作成
func NewFirestoreHistoryRepository(client *firestore.Client) repository.UserHistoryRepository {
	return &FirestoreHistoryRepository{
		client: client,
	}
}

type firestoreHistory struct {
	UserID    string    `firestore:"userId"`
	ToiletID  string    `firestore:"toiletId"`
	Timestamp time.Time `firestore:"timestamp"`
	Rating    *float64  `firestore:"rating"`
	Visited   bool      `firestore:"visited"`
}

// GetRecentByUser 指定ユーザーの利用履歴を新しい順にlimit件まで取得する
func (r *FirestoreHistoryRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]model.UserHistory, error) {
	query := r.client.Collection("userHistory").
		Where("userId", "==", userID).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("利用履歴の取得失敗: %w", err)
	}

	var history []model.UserHistory
	for _, doc := range docs {
		var data firestoreHistory
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("利用履歴の変換失敗 (%s): %w", doc.Ref.ID, err)
		}
		history = append(history, model.UserHistory{
			UserID:    data.UserID,
			ToiletID:  data.ToiletID,
			Timestamp: data.Timestamp,
			Rating:    data.Rating,
			Visited:   data.Visited,
		})
	}

	return history, nil
}
