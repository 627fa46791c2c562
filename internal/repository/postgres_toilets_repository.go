package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ToiletFinder-App/internal/domain/helper"
	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
	"ToiletFinder-App/internal/infrastructure/database"
)

// PostgresToiletsRepository PostgreSQL直接接続を使用したカタログリポジトリ
type PostgresToiletsRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresToiletsRepository 新しいPostgresToiletsRepositoryインスタンスを作成
func NewPostgresToiletsRepository(client *database.PostgreSQLClient) repository.ToiletsRepository {
	return &PostgresToiletsRepository{
		client: client,
	}
}

// toiletRow クエリ結果を受け取るための構造体。位置・設備はjsonbカラム
type toiletRow struct {
	ID           string
	Name         sql.NullString
	Area         sql.NullString
	Location     string
	IsAccessible bool
	Cleanliness  float64
	Busyness     float64
	Amenities    string
	Status       sql.NullString
}

// toToilet toiletRowをmodel.Toiletに変換
func (tr *toiletRow) toToilet() (*model.Toilet, error) {
	var geoPoint GeoPoint
	if err := json.Unmarshal([]byte(tr.Location), &geoPoint); err != nil {
		return nil, fmt.Errorf("location JSONBパースエラー: %w", err)
	}

	location, err := GeoPointToLocation(&geoPoint)
	if err != nil {
		return nil, fmt.Errorf("トイレ %s: %w", tr.ID, err)
	}
	if err := helper.ValidateLocation(location); err != nil {
		return nil, fmt.Errorf("トイレ %s の位置情報が不正: %w", tr.ID, err)
	}

	var amenities []string
	if err := json.Unmarshal([]byte(tr.Amenities), &amenities); err != nil {
		return nil, fmt.Errorf("amenities JSONBパースエラー: %w", err)
	}

	toilet := &model.Toilet{
		ID:           tr.ID,
		Name:         tr.Name.String,
		Area:         tr.Area.String,
		Location:     location,
		IsAccessible: tr.IsAccessible,
		Cleanliness:  tr.Cleanliness,
		Busyness:     tr.Busyness,
		Amenities:    amenities,
		Status:       tr.Status.String,
	}
	toilet.Normalize()
	return toilet, nil
}

const toiletColumns = `id, name, area, location, is_accessible, cleanliness, busyness, amenities, status`

func (r *PostgresToiletsRepository) GetByID(ctx context.Context, id string) (*model.Toilet, error) {
	query := fmt.Sprintf(`SELECT %s FROM toilets WHERE id = $1`, toiletColumns)

	row := r.client.DB.QueryRowContext(ctx, query, id)

	var result toiletRow
	err := row.Scan(&result.ID, &result.Name, &result.Area, &result.Location,
		&result.IsAccessible, &result.Cleanliness, &result.Busyness, &result.Amenities, &result.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("トイレID %s: %w", id, model.ErrToiletNotFound)
		}
		return nil, fmt.Errorf("トイレデータの取得失敗: %w", err)
	}

	return result.toToilet()
}

func (r *PostgresToiletsRepository) GetAll(ctx context.Context) ([]*model.Toilet, error) {
	query := fmt.Sprintf(`SELECT %s FROM toilets`, toiletColumns)

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("トイレ一覧の取得失敗: %w", err)
	}
	defer rows.Close()

	return scanToilets(rows)
}

// FindNearby SQL側では境界ボックスの事前フィルタのみ行い、正確な距離での
// 絞り込みは取得後にアプリケーション側で行う
func (r *PostgresToiletsRepository) FindNearby(ctx context.Context, center model.Location, radiusMeters float64) ([]*model.Toilet, error) {
	box, err := helper.NewBoundingBox(center, radiusMeters)
	if err != nil {
		return nil, err
	}

	// 境界上の取りこぼしを避けるため、クエリ矩形には余裕を持たせる
	bound := BoundingBoxToBound(box)

	query := fmt.Sprintf(`
		SELECT %s FROM toilets
		WHERE (location->'coordinates'->>1)::float BETWEEN $1 AND $2
		  AND (location->'coordinates'->>0)::float BETWEEN $3 AND $4
		LIMIT $5`, toiletColumns)

	rows, err := r.client.DB.QueryContext(ctx, query,
		bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon(), nearbyQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("周辺トイレの取得失敗: %w", err)
	}
	defer rows.Close()

	toilets, err := scanToilets(rows)
	if err != nil {
		return nil, err
	}

	return helper.FilterWithinRadius(toilets, center, radiusMeters), nil
}

func scanToilets(rows *sql.Rows) ([]*model.Toilet, error) {
	var toilets []*model.Toilet
	for rows.Next() {
		var result toiletRow
		err := rows.Scan(&result.ID, &result.Name, &result.Area, &result.Location,
			&result.IsAccessible, &result.Cleanliness, &result.Busyness, &result.Amenities, &result.Status)
		if err != nil {
			return nil, fmt.Errorf("トイレデータのスキャン失敗: %w", err)
		}

		toilet, err := result.toToilet()
		if err != nil {
			return nil, err
		}
		toilets = append(toilets, toilet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("トイレデータの読み取り失敗: %w", err)
	}

	return toilets, nil
}
