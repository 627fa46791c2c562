package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"ToiletFinder-App/internal/domain/repository"
)

// FirestoreAnalysisRepository 推薦結果などの分析記録をFirestoreに保存するシンク
type FirestoreAnalysisRepository struct {
	client *firestore.Client
}

// NewFirestoreAnalysisRepository 新しいFirestoreAnalysisRepositoryインスタンスを作成
func NewFirestoreAnalysisRepository(client *firestore.Client) repository.AnalysisRepository {
	return &FirestoreAnalysisRepository{
		client: client,
	}
}

// Record 分析記録を保存する。呼び出し側がベストエフォートで扱う前提
func (r *FirestoreAnalysisRepository) Record(ctx context.Context, kind string, payload map[string]interface{}) error {
	recordID := fmt.Sprintf("analysis_%s", uuid.New().String())

	doc := map[string]interface{}{
		"kind":      kind,
		"payload":   payload,
		"timestamp": time.Now(),
	}

	if _, err := r.client.Collection("aiAnalysis").Doc(recordID).Set(ctx, doc); err != nil {
		return fmt.Errorf("分析記録の保存失敗 (%s): %w", kind, err)
	}

	log.Printf("✅ 分析記録を保存: %s (kind: %s)", recordID, kind)
	return nil
}
