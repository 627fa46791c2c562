package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"ToiletFinder-App/internal/domain/helper"
	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
	"ToiletFinder-App/internal/infrastructure/database"
)

// SupabaseToiletsRepository Supabase (PostgREST) を使用したカタログリポジトリ
type SupabaseToiletsRepository struct {
	client *database.SupabaseClient
}

// NewSupabaseToiletsRepository 新しいSupabaseToiletsRepositoryインスタンスを作成
func NewSupabaseToiletsRepository(client *database.SupabaseClient) repository.ToiletsRepository {
	return &SupabaseToiletsRepository{
		client: client,
	}
}

// supabaseToiletRow toiletsテーブルの1行。位置はGeoJSON POINTで格納されている
type supabaseToiletRow struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Area         string    `json:"area"`
	Location     *GeoPoint `json:"location"`
	IsAccessible bool      `json:"is_accessible"`
	Cleanliness  float64   `json:"cleanliness"`
	Busyness     float64   `json:"busyness"`
	Amenities    []string  `json:"amenities"`
	Status       string    `json:"status"`
}

// toToilet 行をドメインモデルに変換する。座標が不正な行はここで弾く
func (row *supabaseToiletRow) toToilet() (*model.Toilet, error) {
	location, err := GeoPointToLocation(row.Location)
	if err != nil {
		return nil, fmt.Errorf("トイレ %s: %w", row.ID, err)
	}
	if err := helper.ValidateLocation(location); err != nil {
		return nil, fmt.Errorf("トイレ %s の位置情報が不正: %w", row.ID, err)
	}

	toilet := &model.Toilet{
		ID:           row.ID,
		Name:         row.Name,
		Area:         row.Area,
		Location:     location,
		IsAccessible: row.IsAccessible,
		Cleanliness:  row.Cleanliness,
		Busyness:     row.Busyness,
		Amenities:    row.Amenities,
		Status:       row.Status,
	}
	toilet.Normalize()
	return toilet, nil
}

func (r *SupabaseToiletsRepository) GetByID(ctx context.Context, id string) (*model.Toilet, error) {
	data, _, err := r.client.GetClient().From("toilets").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("トイレデータの取得失敗: %w", err)
	}

	var rows []supabaseToiletRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("トイレデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("トイレID %s: %w", id, model.ErrToiletNotFound)
	}

	return rows[0].toToilet()
}

func (r *SupabaseToiletsRepository) GetAll(ctx context.Context) ([]*model.Toilet, error) {
	data, _, err := r.client.GetClient().From("toilets").Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("トイレ一覧の取得失敗: %w", err)
	}

	var rows []supabaseToiletRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("トイレデータのJSONアンマーシャル失敗: %w", err)
	}

	var toilets []*model.Toilet
	for i := range rows {
		toilet, err := rows[i].toToilet()
		if err != nil {
			return nil, err
		}
		toilets = append(toilets, toilet)
	}

	return toilets, nil
}

// FindNearby PostgRESTは地理演算子を直接扱えないため、全件取得して
// 境界ボックス＋正確な距離の2段階フィルタをアプリケーション側で行う
func (r *SupabaseToiletsRepository) FindNearby(ctx context.Context, center model.Location, radiusMeters float64) ([]*model.Toilet, error) {
	toilets, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return helper.CandidatesInBoundingBox(toilets, model.GeoQuery{
		Center:       center,
		RadiusMeters: radiusMeters,
	})
}
