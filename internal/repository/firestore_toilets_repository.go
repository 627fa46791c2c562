package repository

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	"ToiletFinder-App/internal/domain/helper"
	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
)

const nearbyQueryLimit = 50

// FirestoreToiletsRepository Firestoreのtoiletsコレクションを使用したカタログリポジトリ
type FirestoreToiletsRepository struct {
	client *firestore.Client
}

// NewFirestoreToiletsRepository 新しいFirestoreToiletsRepositoryインスタンスを作成
func NewFirestoreToiletsRepository(client *firestore.Client) repository.ToiletsRepository {
	return &FirestoreToiletsRepository{
		client: client,
	}
}

// firestoreToilet Firestoreドキュメントの構造
type firestoreToilet struct {
	ID           string   `firestore:"id"`
	Name         string   `firestore:"name"`
	Area         string   `firestore:"area"`
	Location     geoField `firestore:"location"`
	IsAccessible bool     `firestore:"isAccessible"`
	Cleanliness  float64  `firestore:"cleanliness"`
	Busyness     float64  `firestore:"busyness"`
	Amenities    []string `firestore:"amenities"`
	Status       string   `firestore:"status"`
}

type geoField struct {
	Lat float64 `firestore:"lat"`
	Lng float64 `firestore:"lng"`
}

// toToilet ドキュメントをドメインモデルに変換する。座標が不正なドキュメントはここで弾く
func (ft *firestoreToilet) toToilet() (*model.Toilet, error) {
	toilet := &model.Toilet{
		ID:   ft.ID,
		Name: ft.Name,
		Area: ft.Area,
		Location: model.Location{
			Latitude:  ft.Location.Lat,
			Longitude: ft.Location.Lng,
		},
		IsAccessible: ft.IsAccessible,
		Cleanliness:  ft.Cleanliness,
		Busyness:     ft.Busyness,
		Amenities:    ft.Amenities,
		Status:       ft.Status,
	}

	if err := helper.ValidateLocation(toilet.Location); err != nil {
		return nil, fmt.Errorf("トイレ %s の位置情報が不正: %w", ft.ID, err)
	}

	toilet.Normalize()
	return toilet, nil
}

func (r *FirestoreToiletsRepository) GetByID(ctx context.Context, id string) (*model.Toilet, error) {
	doc, err := r.client.Collection("toilets").Doc(id).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("トイレID %s: %w", id, model.ErrToiletNotFound)
		}
		return nil, fmt.Errorf("トイレデータの取得失敗: %w", err)
	}

	var data firestoreToilet
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("トイレデータの変換失敗: %w", err)
	}
	if data.ID == "" {
		data.ID = doc.Ref.ID
	}

	return data.toToilet()
}

func (r *FirestoreToiletsRepository) GetAll(ctx context.Context) ([]*model.Toilet, error) {
	docs, err := r.client.Collection("toilets").Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("トイレ一覧の取得失敗: %w", err)
	}

	return r.docsToToilets(docs)
}

// FindNearby 境界ボックスによる2段階検索。Firestoreには矩形範囲クエリのみ投げ、
// 正確な距離での絞り込みは取得後に行う
func (r *FirestoreToiletsRepository) FindNearby(ctx context.Context, center model.Location, radiusMeters float64) ([]*model.Toilet, error) {
	box, err := helper.NewBoundingBox(center, radiusMeters)
	if err != nil {
		return nil, err
	}

	query := r.client.Collection("toilets").
		Where("location.lat", ">=", box.MinLat).
		Where("location.lat", "<=", box.MaxLat).
		Where("location.lng", ">=", box.MinLng).
		Where("location.lng", "<=", box.MaxLng).
		Limit(nearbyQueryLimit)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("周辺トイレの取得失敗: %w", err)
	}

	toilets, err := r.docsToToilets(docs)
	if err != nil {
		return nil, err
	}

	return helper.FilterWithinRadius(toilets, center, radiusMeters), nil
}

func (r *FirestoreToiletsRepository) docsToToilets(docs []*firestore.DocumentSnapshot) ([]*model.Toilet, error) {
	var toilets []*model.Toilet
	for _, doc := range docs {
		var data firestoreToilet
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("トイレデータの変換失敗 (%s): %w", doc.Ref.ID, err)
		}
		if data.ID == "" {
			data.ID = doc.Ref.ID
		}

		toilet, err := data.toToilet()
		if err != nil {
			return nil, err
		}
		toilets = append(toilets, toilet)
	}
	return toilets, nil
}
