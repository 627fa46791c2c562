package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"ToiletFinder-App/internal/domain/helper"
	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
	"ToiletFinder-App/internal/domain/service"
)

const (
	topRecommendations  = 5
	defaultRadiusMeters = 2000.0 // 半径未指定の場合は2km
	historyFetchLimit   = 50
	analysisTimeout     = 5 * time.Second
)

type RecommendationUseCase interface {
	// GetPersonalizedRecommendations はユーザー設定と現在地に基づく推薦トイレの上位リストを返す
	GetPersonalizedRecommendations(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResponse, error)

	// GetSimilarToilets は指定トイレに似たトイレの上位リストを返す
	GetSimilarToilets(ctx context.Context, toiletID string) (*model.RecommendationResponse, error)
}

// recommendationUseCaseImpl はRecommendationUseCaseの実装
type recommendationUseCaseImpl struct {
	toiletsRepo       repository.ToiletsRepository
	historyRepo       repository.UserHistoryRepository
	analysisRepo      repository.AnalysisRepository
	recommendService  *service.RecommendService
	similarityService *service.SimilarityService
}

// NewRecommendationUseCase は新しいRecommendationUseCaseインスタンスを作成する。
// analysisRepoはnil可（分析記録を行わない構成）
func NewRecommendationUseCase(
	toiletsRepo repository.ToiletsRepository,
	historyRepo repository.UserHistoryRepository,
	analysisRepo repository.AnalysisRepository,
) RecommendationUseCase {
	return &recommendationUseCaseImpl{
		toiletsRepo:       toiletsRepo,
		historyRepo:       historyRepo,
		analysisRepo:      analysisRepo,
		recommendService:  service.NewRecommendService(),
		similarityService: service.NewSimilarityService(),
	}
}

// GetPersonalizedRecommendations はユーザー設定と現在地に基づく推薦トイレの上位リストを返す
func (u *recommendationUseCaseImpl) GetPersonalizedRecommendations(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResponse, error) {
	if err := helper.ValidateLocation(req.Location); err != nil {
		return nil, err
	}

	radius := req.RadiusMeters
	if radius <= 0 {
		radius = defaultRadiusMeters
	}

	log.Printf("🚀 推薦生成開始 (user: %s, 半径: %.0fm)", req.UserID, radius)

	// 候補と履歴は互いに依存しないため並行で取得する
	var (
		wg         sync.WaitGroup
		candidates []*model.Toilet
		history    []model.UserHistory
		fetchErrs  [2]error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		candidates, fetchErrs[0] = u.toiletsRepo.FindNearby(ctx, req.Location, radius)
	}()
	go func() {
		defer wg.Done()
		history, fetchErrs[1] = u.historyRepo.GetRecentByUser(ctx, req.UserID, historyFetchLimit)
	}()
	wg.Wait()

	if fetchErrs[0] != nil {
		return nil, fmt.Errorf("候補トイレの取得に失敗: %w: %w", model.ErrUpstreamUnavailable, fetchErrs[0])
	}
	if fetchErrs[1] != nil {
		return nil, fmt.Errorf("利用履歴の取得に失敗: %w: %w", model.ErrUpstreamUnavailable, fetchErrs[1])
	}

	recommendations := make([]model.Recommendation, 0, len(candidates))
	for _, toilet := range candidates {
		recommendations = append(recommendations, u.recommendService.ScoreToilet(toilet, req.Preferences, history))
	}

	top := topByScore(recommendations, topRecommendations)
	log.Printf("✅ %d件の候補から%d件を推薦", len(candidates), len(top))

	u.recordAnalysis("personalized_recommendation", map[string]interface{}{
		"user_id":         req.UserID,
		"candidate_count": len(candidates),
		"result_count":    len(top),
		"radius_meters":   radius,
	})

	return &model.RecommendationResponse{Recommendations: top}, nil
}

// GetSimilarToilets は指定トイレに似たトイレの上位リストを返す
func (u *recommendationUseCaseImpl) GetSimilarToilets(ctx context.Context, toiletID string) (*model.RecommendationResponse, error) {
	reference, err := u.toiletsRepo.GetByID(ctx, toiletID)
	if err != nil {
		if errors.Is(err, model.ErrToiletNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("基準トイレの取得に失敗: %w: %w", model.ErrUpstreamUnavailable, err)
	}

	allToilets, err := u.toiletsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("トイレ一覧の取得に失敗: %w: %w", model.ErrUpstreamUnavailable, err)
	}

	// 基準トイレ自身は候補から除外する
	candidates := helper.RemoveToilet(allToilets, toiletID)

	recommendations := make([]model.Recommendation, 0, len(candidates))
	for _, toilet := range candidates {
		recommendations = append(recommendations, u.similarityService.ScoreSimilarity(toilet, reference))
	}

	top := topByScore(recommendations, topRecommendations)
	log.Printf("✅ 類似トイレ検索完了 (基準: %s, 結果: %d件)", toiletID, len(top))

	u.recordAnalysis("similar_toilets", map[string]interface{}{
		"reference_id": toiletID,
		"result_count": len(top),
	})

	return &model.RecommendationResponse{Recommendations: top}, nil
}

// topByScore はスコア降順の安定ソートで上位n件を返す（同点は元の候補順を保つ）
func topByScore(recommendations []model.Recommendation, n int) []model.Recommendation {
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	if len(recommendations) > n {
		recommendations = recommendations[:n]
	}
	return recommendations
}

// recordAnalysis は分析記録をベストエフォートで書き込む。リクエストの完了を
// 待たせないよう別goroutineで実行し、失敗はログに残すだけで呼び出し元へは返さない
func (u *recommendationUseCaseImpl) recordAnalysis(kind string, payload map[string]interface{}) {
	if u.analysisRepo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()

		if err := u.analysisRepo.Record(ctx, kind, payload); err != nil {
			log.Printf("⚠️ 分析記録の保存に失敗 (kind: %s): %v", kind, err)
		}
	}()
}
