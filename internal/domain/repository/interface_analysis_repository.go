package repository

import "context"

// AnalysisRepository 推薦結果などの分析記録を書き込むシンク。
// 書き込みはベストエフォートであり、失敗してもランキング処理には影響させない
type AnalysisRepository interface {
	Record(ctx context.Context, kind string, payload map[string]interface{}) error
}
