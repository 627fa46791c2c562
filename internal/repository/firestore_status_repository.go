package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
)

// FirestoreStatusRepository FirestoreのtoiletStatusコレクションを使用した状態履歴リポジトリ
type FirestoreStatusRepository struct {
	client *firestore.Client
}

// NewFirestoreStatusRepository 新しいFirestoreStatusRepositoryインスタンスを作成
func NewFirestoreStatusRepository(client *firestore.Client) repository.StatusHistoryRepository {
	return &FirestoreStatusRepository{
		client: client,
	}
}

type firestoreStatusSnapshot struct {
	ToiletID    string    `firestore:"toiletId"`
	Status      string    `firestore:"status"`
	Busyness    float64   `firestore:"busyness"`
	Cleanliness float64   `firestore:"cleanliness"`
	Timestamp   time.Time `firestore:"timestamp"`
}

// GetRecentByToilet 指定トイレの状態スナップショットを新しい順にlimit件まで取得する
func (r *FirestoreStatusRepository) GetRecentByToilet(ctx context.Context, toiletID string, limit int) ([]model.StatusSnapshot, error) {
	query := r.client.Collection("toiletStatus").
		Where("toiletId", "==", toiletID).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("状態履歴の取得失敗: %w", err)
	}

	var snapshots []model.StatusSnapshot
	for _, doc := range docs {
		var data firestoreStatusSnapshot
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("状態履歴の変換失敗 (%s): %w", doc.Ref.ID, err)
		}
		snapshots = append(snapshots, model.StatusSnapshot(data))
	}

	return snapshots, nil
}

// FirestoreMaintenanceRepository FirestoreのmaintenanceReportsコレクションを使用した報告リポジトリ
type FirestoreMaintenanceRepository struct {
	client *firestore.Client
}

// NewFirestoreMaintenanceRepository 新しいFirestoreMaintenanceRepositoryインスタンスを作成
func NewFirestoreMaintenanceRepository(client *firestore.Client) repository.MaintenanceReportsRepository {
	return &FirestoreMaintenanceRepository{
		client: client,
	}
}

type firestoreMaintenanceReport struct {
	ToiletID  string    `firestore:"toiletId"`
	Issue     string    `firestore:"issue"`
	Severity  string    `firestore:"severity"`
	Status    string    `firestore:"status"`
	Timestamp time.Time `firestore:"timestamp"`
}

// GetRecentByToilet 指定トイレのメンテナンス報告を新しい順にlimit件まで取得する
func (r *FirestoreMaintenanceRepository) GetRecentByToilet(ctx context.Context, toiletID string, limit int) ([]model.MaintenanceReport, error) {
	query := r.client.Collection("maintenanceReports").
		Where("toiletId", "==", toiletID).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("メンテナンス報告の取得失敗: %w", err)
	}

	var reports []model.MaintenanceReport
	for _, doc := range docs {
		var data firestoreMaintenanceReport
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("メンテナンス報告の変換失敗 (%s): %w", doc.Ref.ID, err)
		}
		reports = append(reports, model.MaintenanceReport(data))
	}

	return reports, nil
}
