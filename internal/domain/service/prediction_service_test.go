package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ToiletFinder-App/internal/domain/model"
)

type fakeStatusRepo struct {
	snapshots []model.StatusSnapshot
	err       error
}

func (f *fakeStatusRepo) GetRecentByToilet(ctx context.Context, toiletID string, limit int) ([]model.StatusSnapshot, error) {
	return f.snapshots, f.err
}

type fakeReportsRepo struct {
	reports []model.MaintenanceReport
	err     error
}

func (f *fakeReportsRepo) GetRecentByToilet(ctx context.Context, toiletID string, limit int) ([]model.MaintenanceReport, error) {
	return f.reports, f.err
}

func newTestPredictionService(statusRepo *fakeStatusRepo, reportsRepo *fakeReportsRepo, now time.Time) *StatusPredictionService {
	s := NewStatusPredictionService(statusRepo, reportsRepo)
	s.now = func() time.Time { return now }
	return s
}

func TestStatusPredictionService_PredictStatus(t *testing.T) {
	ctx := context.Background()
	// 月曜14時に固定
	now := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

	t.Run("データなしの場合はデフォルト値", func(t *testing.T) {
		s := newTestPredictionService(&fakeStatusRepo{}, &fakeReportsRepo{}, now)

		prediction, err := s.PredictStatus(ctx, "t1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusAvailable, prediction.PredictedStatus)
		assert.Equal(t, 0.5, prediction.Busyness)
		assert.Equal(t, 0.5, prediction.Confidence)
		assert.Empty(t, prediction.MaintenanceNeeds)
	})

	t.Run("同じ曜日・時間帯の混雑度が高ければbusy", func(t *testing.T) {
		statusRepo := &fakeStatusRepo{snapshots: []model.StatusSnapshot{
			// 1週間前の月曜14時
			{ToiletID: "t1", Busyness: 0.9, Cleanliness: 0.8, Timestamp: now.Add(-7 * 24 * time.Hour)},
			// 火曜14時は対象外
			{ToiletID: "t1", Busyness: 0.1, Cleanliness: 0.8, Timestamp: now.Add(-6 * 24 * time.Hour)},
		}}
		s := newTestPredictionService(statusRepo, &fakeReportsRepo{}, now)

		prediction, err := s.PredictStatus(ctx, "t1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusBusy, prediction.PredictedStatus)
		assert.InDelta(t, 0.9, prediction.Busyness, 1e-6)
	})

	t.Run("高深刻度の未対応報告があればmaintenance", func(t *testing.T) {
		reportsRepo := &fakeReportsRepo{reports: []model.MaintenanceReport{
			{ToiletID: "t1", Issue: "水漏れ", Severity: model.SeverityHigh, Status: "pending", Timestamp: now.Add(-time.Hour)},
			{ToiletID: "t1", Issue: "対応済み", Severity: model.SeverityHigh, Status: "resolved", Timestamp: now.Add(-2 * time.Hour)},
		}}
		s := newTestPredictionService(&fakeStatusRepo{}, reportsRepo, now)

		prediction, err := s.PredictStatus(ctx, "t1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusMaintenance, prediction.PredictedStatus)
		assert.Len(t, prediction.MaintenanceNeeds, 1)
		assert.Equal(t, "水漏れ", prediction.MaintenanceNeeds[0].Message)
	})

	t.Run("平均清潔度が低いと清掃警告が出る", func(t *testing.T) {
		statusRepo := &fakeStatusRepo{snapshots: []model.StatusSnapshot{
			{ToiletID: "t1", Busyness: 0.2, Cleanliness: 0.2, Timestamp: now.Add(-time.Hour)},
			{ToiletID: "t1", Busyness: 0.2, Cleanliness: 0.3, Timestamp: now.Add(-2 * time.Hour)},
		}}
		s := newTestPredictionService(statusRepo, &fakeReportsRepo{}, now)

		prediction, err := s.PredictStatus(ctx, "t1")

		assert.NoError(t, err)
		// 平均0.25 < 0.3 で高深刻度の清掃警告 → maintenance
		assert.Equal(t, model.StatusMaintenance, prediction.PredictedStatus)
		assert.Equal(t, model.SeverityHigh, prediction.MaintenanceNeeds[0].Severity)
		assert.Equal(t, "cleanliness", prediction.MaintenanceNeeds[0].Type)
	})

	t.Run("直近データが多いほど信頼度が上がる", func(t *testing.T) {
		var snapshots []model.StatusSnapshot
		for i := 0; i < 50; i++ {
			snapshots = append(snapshots, model.StatusSnapshot{
				ToiletID:    "t1",
				Busyness:    0.4,
				Cleanliness: 0.8,
				Timestamp:   now.Add(-time.Duration(i+1) * time.Hour),
			})
		}
		s := newTestPredictionService(&fakeStatusRepo{snapshots: snapshots}, &fakeReportsRepo{}, now)

		prediction, err := s.PredictStatus(ctx, "t1")

		assert.NoError(t, err)
		assert.Greater(t, prediction.Confidence, 0.5)
		assert.LessOrEqual(t, prediction.Confidence, 1.0)
	})

	t.Run("状態履歴の取得失敗はエラー", func(t *testing.T) {
		statusRepo := &fakeStatusRepo{err: assert.AnError}
		s := newTestPredictionService(statusRepo, &fakeReportsRepo{}, now)

		_, err := s.PredictStatus(ctx, "t1")

		assert.Error(t, err)
	})
}
